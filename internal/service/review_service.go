package service

import (
	"errors"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"gorm.io/gorm"
)

type ReviewService struct {
	reviewRepo     repository.ReviewRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, courseRepo: courseRepo, enrollmentRepo: enrollmentRepo}
}

func (s *ReviewService) ListByCourse(courseID uint) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		result = append(result, toReviewResponse(&reviews[i]))
	}
	return result, nil
}

// CreateReview enforces the reviewer eligibility rules: enrolled in the
// course, not its instructor, and not already reviewed.
func (s *ReviewService) CreateReview(principal model.Principal, req dto.ReviewCreateRequest) (*dto.ReviewResponse, error) {
	course, err := s.courseRepo.FindByID(req.Course)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.InstructorID == principal.ID {
		return nil, apperr.RuleViolation("instructors cannot review their own course")
	}

	enrolled, err := s.enrollmentRepo.Exists(principal.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, apperr.RuleViolation("you must be enrolled to review this course")
	}

	if _, err := s.reviewRepo.FindByCourseAndStudent(course.ID, principal.ID); err == nil {
		return nil, apperr.RuleViolation("you have already reviewed this course")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := model.Review{
		CourseID:   course.ID,
		StudentID:  principal.ID,
		Rating:     req.Rating,
		ReviewText: req.ReviewText,
	}
	if err := s.reviewRepo.Create(&review); err != nil {
		// The unique index backstops a racing duplicate review.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.RuleViolation("you have already reviewed this course")
		}
		return nil, err
	}
	return s.getReview(review.ID)
}

func (s *ReviewService) UpdateReview(principal model.Principal, id uint, req dto.ReviewUpdateRequest) (*dto.ReviewResponse, error) {
	review, err := s.ownReview(principal, id)
	if err != nil {
		return nil, err
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.ReviewText != nil {
		review.ReviewText = *req.ReviewText
	}
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return s.getReview(review.ID)
}

func (s *ReviewService) DeleteReview(principal model.Principal, id uint) error {
	if _, err := s.ownReview(principal, id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(id)
}

func (s *ReviewService) getReview(id uint) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := toReviewResponse(review)
	return &resp, nil
}

// ownReview loads a review and enforces author-or-admin access.
func (s *ReviewService) ownReview(principal model.Principal, id uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, err
	}
	if review.StudentID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.Forbidden("you cannot modify this review")
	}
	return review, nil
}
