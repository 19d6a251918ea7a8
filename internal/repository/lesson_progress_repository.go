package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

// LessonProgressRepository reads the per-lesson progress rows. Completing a
// lesson mutates them inside the enrollment service's transaction.
type LessonProgressRepository interface {
	FindAllByStudent(studentID uint) ([]model.LessonProgress, error)
}

type lessonProgressRepository struct {
	db *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) LessonProgressRepository {
	return &lessonProgressRepository{db: db}
}

func (r *lessonProgressRepository) FindAllByStudent(studentID uint) ([]model.LessonProgress, error) {
	var progress []model.LessonProgress
	err := r.db.
		Preload("Lesson").
		Joins("JOIN enrollments ON enrollments.id = lesson_progresses.enrollment_id").
		Where("enrollments.student_id = ?", studentID).
		Find(&progress).Error
	return progress, err
}
