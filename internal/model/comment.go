package model

import "time"

// Comment belongs to a discussion; ParentID nests replies one level under
// another comment of the same discussion. IsInstructorReply is computed at
// save time by comparing the author to the course instructor.
type Comment struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	DiscussionID      uint      `json:"discussion_id" gorm:"not null;index"`
	AuthorID          uint      `json:"author_id" gorm:"not null;index"`
	Author            User      `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentID          *uint     `json:"parent_id,omitempty"`
	Content           string    `json:"content" gorm:"type:text;not null"`
	IsInstructorReply bool      `json:"is_instructor_reply" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
