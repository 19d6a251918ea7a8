package model

import "time"

type Question struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	QuizID       uint      `json:"quiz_id" gorm:"not null;index"`
	QuestionText string    `json:"question_text" gorm:"type:text;not null"`
	QuestionType string    `json:"question_type" gorm:"type:varchar(20);not null;default:'multiple_choice'"` // "multiple_choice", "true_false"
	Points       int       `json:"points" gorm:"not null;default:1"`
	Order        int       `json:"order" gorm:"not null;default:0"`
	Explanation  string    `json:"explanation,omitempty" gorm:"type:text"` // shown after answering
	Answers      []Answer  `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
)

// CorrectAnswer returns the first loaded answer flagged correct, or nil.
func (q *Question) CorrectAnswer() *Answer {
	for i := range q.Answers {
		if q.Answers[i].IsCorrect {
			return &q.Answers[i]
		}
	}
	return nil
}
