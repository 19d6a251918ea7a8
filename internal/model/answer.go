package model

type Answer struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	QuestionID uint   `json:"question_id" gorm:"not null;index"`
	AnswerText string `json:"answer_text" gorm:"not null"`
	IsCorrect  bool   `json:"is_correct" gorm:"not null;default:false"`
	Order      int    `json:"order" gorm:"not null;default:0"`
}
