package model

import "time"

// StudentAnswer records one selected answer within an attempt. Correctness and
// points are derived once at creation and never recomputed.
type StudentAnswer struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	AttemptID        uint      `json:"attempt_id" gorm:"not null;uniqueIndex:idx_student_answer_attempt_question"`
	QuestionID       uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_student_answer_attempt_question"`
	Question         Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedAnswerID uint      `json:"selected_answer_id" gorm:"not null"`
	SelectedAnswer   Answer    `json:"selected_answer,omitempty" gorm:"foreignKey:SelectedAnswerID"`
	IsCorrect        bool      `json:"is_correct" gorm:"not null;default:false"`
	PointsEarned     int       `json:"points_earned" gorm:"not null;default:0"`
	AnsweredAt       time.Time `json:"answered_at" gorm:"autoCreateTime"`
}
