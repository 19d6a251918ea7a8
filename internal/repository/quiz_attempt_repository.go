package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

// QuizAttemptRepository covers the read side of attempts. Starting and
// submitting write through the attempt service's transactions instead.
type QuizAttemptRepository interface {
	FindByIDWithDetails(id uint) (*model.QuizAttempt, error)
	FindAllByStudent(studentID uint) ([]model.QuizAttempt, error)
}

type quizAttemptRepository struct {
	db *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) QuizAttemptRepository {
	return &quizAttemptRepository{db: db}
}

func (r *quizAttemptRepository) FindByIDWithDetails(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Preload("StudentAnswers.Question.Answers").
		Preload("StudentAnswers.SelectedAnswer").
		First(&attempt, id).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizAttemptRepository) FindAllByStudent(studentID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.
		Preload("Quiz").
		Where("student_id = ?", studentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
