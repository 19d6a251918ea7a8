package model

import (
	"time"

	"gorm.io/gorm"
)

type Discussion struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CourseID  uint           `json:"course_id" gorm:"not null;index"`
	AuthorID  uint           `json:"author_id" gorm:"not null;index"`
	Author    User           `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:DiscussionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
