package repository

import (
	"strings"

	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	FindByIDWithLessons(id uint) (*model.Course, error)
	FindPublished(search string) ([]model.Course, error)
	Update(course *model.Course) error
	Delete(id uint) error
	CountLessons(courseID uint) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Instructor").Preload("Category").First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDWithLessons(id uint) (*model.Course, error) {
	var course model.Course
	err := r.db.
		Preload("Instructor").
		Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.\"order\" ASC")
		}).
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindPublished lists published courses, optionally filtered by a
// case-insensitive search over title, description and the instructor's
// email and name.
func (r *courseRepository) FindPublished(search string) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.
		Preload("Instructor").
		Preload("Category").
		Where("courses.status = ?", model.CourseStatusPublished)
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.
			Joins("JOIN users ON users.id = courses.instructor_id").
			Where(
				"LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?",
				like, like, like, like, like,
			)
	}
	err := query.Order("courses.created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Delete(&model.Course{}, id).Error
}

func (r *courseRepository) CountLessons(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
