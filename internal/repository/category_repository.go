package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *model.Category) error
	FindBySlug(slug string) (*model.Category, error)
	FindAllWithCourseCount() ([]struct {
		model.Category
		CourseCount int
	}, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) FindBySlug(slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAllWithCourseCount() ([]struct {
	model.Category
	CourseCount int
}, error) {
	var results []struct {
		model.Category
		CourseCount int
	}
	err := r.db.Model(&model.Category{}).
		Select("categories.*, (SELECT COUNT(*) FROM courses WHERE courses.category_id = categories.id AND courses.deleted_at IS NULL) as course_count").
		Order("categories.name ASC").
		Scan(&results).Error
	return results, err
}
