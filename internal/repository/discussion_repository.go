package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

type DiscussionRepository interface {
	Create(discussion *model.Discussion) error
	Update(discussion *model.Discussion) error
	Delete(id uint) error
	FindByID(id uint) (*model.Discussion, error)
	FindByIDWithComments(id uint) (*model.Discussion, error)
	FindAllByCourse(courseID uint) ([]struct {
		model.Discussion
		CommentCount int
	}, error)
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(discussion *model.Discussion) error {
	return r.db.Create(discussion).Error
}

func (r *discussionRepository) Update(discussion *model.Discussion) error {
	return r.db.Save(discussion).Error
}

func (r *discussionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Discussion{}, id).Error
}

func (r *discussionRepository) FindByID(id uint) (*model.Discussion, error) {
	var discussion model.Discussion
	if err := r.db.Preload("Author").First(&discussion, id).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

func (r *discussionRepository) FindByIDWithComments(id uint) (*model.Discussion, error) {
	var discussion model.Discussion
	err := r.db.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&discussion, id).Error
	if err != nil {
		return nil, err
	}
	return &discussion, nil
}

func (r *discussionRepository) FindAllByCourse(courseID uint) ([]struct {
	model.Discussion
	CommentCount int
}, error) {
	var results []struct {
		model.Discussion
		CommentCount int
	}
	err := r.db.Model(&model.Discussion{}).
		Select("discussions.*, (SELECT COUNT(*) FROM comments WHERE comments.discussion_id = discussions.id) as comment_count").
		Where("discussions.course_id = ? AND discussions.deleted_at IS NULL", courseID).
		Order("discussions.created_at DESC").
		Scan(&results).Error
	return results, err
}
