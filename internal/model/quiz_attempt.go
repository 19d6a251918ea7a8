package model

import "time"

// QuizAttempt is one instance of a student taking a quiz, bounded by start and
// submit. The (student, quiz, attempt_number) unique index is the backstop that
// turns a racing start into a rejected duplicate instead of silent corruption.
type QuizAttempt struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	StudentID        uint            `json:"student_id" gorm:"not null;uniqueIndex:idx_attempt_student_quiz_number"`
	Student          User            `json:"-" gorm:"foreignKey:StudentID"`
	QuizID           uint            `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_student_quiz_number"`
	Quiz             Quiz            `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	AttemptNumber    int             `json:"attempt_number" gorm:"not null;default:1;uniqueIndex:idx_attempt_student_quiz_number"`
	Score            float64         `json:"score" gorm:"type:decimal(5,2);not null;default:0"` // percentage
	TotalPoints      int             `json:"total_points" gorm:"not null;default:0"`
	EarnedPoints     int             `json:"earned_points" gorm:"not null;default:0"`
	Passed           bool            `json:"passed" gorm:"not null;default:false"`
	StartedAt        time.Time       `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"` // nil while in progress
	TimeTakenSeconds *int            `json:"time_taken_seconds,omitempty"`
	StudentAnswers   []StudentAnswer `json:"student_answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// InProgress reports whether the attempt is still open for submission.
func (a *QuizAttempt) InProgress() bool {
	return a.CompletedAt == nil
}
