package model

import (
	"time"

	"gorm.io/gorm"
)

type Lesson struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	CourseID      uint           `json:"course_id" gorm:"not null;index"`
	Title         string         `json:"title" gorm:"not null"`
	Description   string         `json:"description,omitempty" gorm:"type:text"`
	LessonType    string         `json:"lesson_type" gorm:"type:varchar(10);not null;default:'video'"` // "video", "text"
	VideoURL      string         `json:"video_url,omitempty"`
	TextContent   string         `json:"text_content,omitempty" gorm:"type:text"`
	Order         int            `json:"order" gorm:"not null;default:0"`
	Duration      int            `json:"duration" gorm:"default:0"` // minutes
	IsFreePreview bool           `json:"is_free_preview" gorm:"default:false"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
