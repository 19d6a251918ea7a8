package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id uint) (*model.Lesson, error)
	FindByCourseID(courseID uint) ([]model.Lesson, error)
	Update(lesson *model.Lesson) error
	Delete(id uint) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) FindByCourseID(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db.Where("course_id = ?", courseID).Order("\"order\" ASC").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) Update(lesson *model.Lesson) error {
	return r.db.Save(lesson).Error
}

func (r *lessonRepository) Delete(id uint) error {
	return r.db.Delete(&model.Lesson{}, id).Error
}
