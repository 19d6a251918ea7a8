package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

// CourseRatingStats is the aggregate used on course detail pages and in
// instructor analytics.
type CourseRatingStats struct {
	AverageRating float64
	ReviewCount   int64
}

type ReviewRepository interface {
	Create(review *model.Review) error
	Update(review *model.Review) error
	Delete(id uint) error
	FindByID(id uint) (*model.Review, error)
	FindByCourseAndStudent(courseID, studentID uint) (*model.Review, error)
	FindAllByCourse(courseID uint) ([]model.Review, error)
	StatsByCourse(courseID uint) (*CourseRatingStats, error)
	RatingDistributionByCourse(courseID uint) (map[string]int, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&model.Review{}, id).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("Student").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByCourseAndStudent(courseID, studentID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindAllByCourse(courseID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.
		Preload("Student").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) StatsByCourse(courseID uint) (*CourseRatingStats, error) {
	var stats CourseRatingStats
	if err := r.db.Model(&model.Review{}).Where("course_id = ?", courseID).Count(&stats.ReviewCount).Error; err != nil {
		return nil, err
	}
	if stats.ReviewCount > 0 {
		var avg *float64
		err := r.db.Model(&model.Review{}).
			Select("AVG(rating)").
			Where("course_id = ?", courseID).
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		if avg != nil {
			stats.AverageRating = *avg
		}
	}
	return &stats, nil
}

func (r *reviewRepository) RatingDistributionByCourse(courseID uint) (map[string]int, error) {
	distribution := map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0}
	var rows []struct {
		Rating int
		Count  int
	}
	err := r.db.Model(&model.Review{}).
		Select("rating, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		switch row.Rating {
		case 1:
			distribution["1"] = row.Count
		case 2:
			distribution["2"] = row.Count
		case 3:
			distribution["3"] = row.Count
		case 4:
			distribution["4"] = row.Count
		case 5:
			distribution["5"] = row.Count
		}
	}
	return distribution, nil
}
