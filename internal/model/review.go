package model

import "time"

type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CourseID     uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_review_course_student"`
	StudentID    uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_review_course_student"`
	Student      User      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Rating       int       `json:"rating" gorm:"not null"` // 1..5
	ReviewText   string    `json:"review_text,omitempty" gorm:"type:text"`
	HelpfulCount int       `json:"helpful_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
