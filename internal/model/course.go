package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description" gorm:"type:text;not null"`
	InstructorID uint           `json:"instructor_id" gorm:"not null;index"`
	Instructor   User           `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	CategoryID   *uint          `json:"category_id,omitempty"`
	Category     *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Difficulty   string         `json:"difficulty" gorm:"type:varchar(20);not null;default:'beginner'"` // "beginner", "intermediate", "advanced"
	Status       string         `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`        // "draft", "published"
	ThumbnailURL string         `json:"thumbnail_url,omitempty"`
	Lessons      []Lesson       `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
)
