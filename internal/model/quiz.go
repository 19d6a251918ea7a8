package model

import (
	"time"

	"gorm.io/gorm"
)

// Quiz is attached one-to-one to a lesson.
type Quiz struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	LessonID           uint           `json:"lesson_id" gorm:"not null;uniqueIndex"`
	Lesson             Lesson         `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	Title              string         `json:"title" gorm:"not null"`
	Description        string         `json:"description,omitempty" gorm:"type:text"`
	PassingScore       int            `json:"passing_score" gorm:"not null;default:70"` // percentage required to pass
	TimeLimitMinutes   *int           `json:"time_limit_minutes,omitempty"`
	MaxAttempts        int            `json:"max_attempts" gorm:"not null;default:3"`
	ShowCorrectAnswers bool           `json:"show_correct_answers" gorm:"default:true"`
	Questions          []Question     `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TotalPoints sums the point weights of the loaded questions.
func (q *Quiz) TotalPoints() int {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	return total
}
