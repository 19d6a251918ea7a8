package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByID(id uint) (*model.Quiz, error)
	FindByIDWithQuestions(id uint) (*model.Quiz, error)
	FindByLessonID(lessonID uint) (*model.Quiz, error)
	FindAllWithQuestionCount() ([]struct {
		model.Quiz
		QuestionCount int
	}, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	// GORM creates the nested questions and answers along with the quiz.
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.\"order\" ASC")
		}).
		Preload("Questions.Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.\"order\" ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByLessonID(lessonID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.Where("lesson_id = ?", lessonID).First(&quiz).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindAllWithQuestionCount() ([]struct {
	model.Quiz
	QuestionCount int
}, error) {
	var results []struct {
		model.Quiz
		QuestionCount int
	}
	err := r.db.Model(&model.Quiz{}).
		Select("quizzes.*, (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = quizzes.id) as question_count").
		Where("quizzes.deleted_at IS NULL").
		Order("quizzes.created_at DESC").
		Scan(&results).Error
	return results, err
}
