package service

import (
	"errors"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo     repository.CourseRepository
	categoryRepo   repository.CategoryRepository
	enrollmentRepo repository.EnrollmentRepository
	reviewRepo     repository.ReviewRepository
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	categoryRepo repository.CategoryRepository,
	enrollmentRepo repository.EnrollmentRepository,
	reviewRepo repository.ReviewRepository,
) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		categoryRepo:   categoryRepo,
		enrollmentRepo: enrollmentRepo,
		reviewRepo:     reviewRepo,
	}
}

// ListCourses returns published courses, optionally filtered by a search term
// matched against title, description and the instructor's email and name.
func (s *CourseService) ListCourses(search string) ([]dto.CourseSummaryResponse, error) {
	courses, err := s.courseRepo.FindPublished(search)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CourseSummaryResponse, 0, len(courses))
	for i := range courses {
		summary, err := buildCourseSummary(&courses[i], s.courseRepo, s.enrollmentRepo, s.reviewRepo)
		if err != nil {
			return nil, err
		}
		result = append(result, summary)
	}
	return result, nil
}

// GetCourse returns the course detail with its ordered lessons. Draft courses
// are visible only to their instructor and admins.
func (s *CourseService) GetCourse(principal *model.Principal, id uint) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.FindByIDWithLessons(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.Status != model.CourseStatusPublished {
		if principal == nil || (course.InstructorID != principal.ID && !principal.IsAdmin()) {
			return nil, apperr.NotFound("course not found")
		}
	}

	summary, err := buildCourseSummary(course, s.courseRepo, s.enrollmentRepo, s.reviewRepo)
	if err != nil {
		return nil, err
	}
	detail := dto.CourseDetailResponse{CourseSummaryResponse: summary}
	detail.Lessons = make([]dto.LessonResponse, 0, len(course.Lessons))
	for i := range course.Lessons {
		detail.Lessons = append(detail.Lessons, toLessonResponse(&course.Lessons[i]))
	}
	return &detail, nil
}

func (s *CourseService) CreateCourse(principal model.Principal, req dto.CourseCreateRequest) (*dto.CourseSummaryResponse, error) {
	if !principal.IsInstructor() && !principal.IsAdmin() {
		return nil, apperr.Forbidden("only instructors can create courses")
	}

	course := model.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: principal.ID,
		CategoryID:   req.CategoryID,
		Difficulty:   req.Difficulty,
		Status:       req.Status,
		ThumbnailURL: req.ThumbnailURL,
	}
	if course.Difficulty == "" {
		course.Difficulty = "beginner"
	}
	if course.Status == "" {
		course.Status = model.CourseStatusDraft
	}
	if err := s.courseRepo.Create(&course); err != nil {
		return nil, err
	}

	created, err := s.courseRepo.FindByID(course.ID)
	if err != nil {
		return nil, err
	}
	summary, err := buildCourseSummary(created, s.courseRepo, s.enrollmentRepo, s.reviewRepo)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("course_id", course.ID).Uint("instructor_id", principal.ID).Msg("Course created")
	return &summary, nil
}

func (s *CourseService) UpdateCourse(principal model.Principal, id uint, req dto.CourseUpdateRequest) (*dto.CourseSummaryResponse, error) {
	course, err := s.findOwnedCourse(principal, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CategoryID != nil {
		course.CategoryID = req.CategoryID
	}
	if req.Difficulty != nil {
		course.Difficulty = *req.Difficulty
	}
	if req.Status != nil {
		course.Status = *req.Status
	}
	if req.ThumbnailURL != nil {
		course.ThumbnailURL = *req.ThumbnailURL
	}

	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	summary, err := buildCourseSummary(course, s.courseRepo, s.enrollmentRepo, s.reviewRepo)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *CourseService) DeleteCourse(principal model.Principal, id uint) error {
	if _, err := s.findOwnedCourse(principal, id); err != nil {
		return err
	}
	return s.courseRepo.Delete(id)
}

// Analytics is the instructor dashboard for one course: enrollment counts,
// completion and progress figures, and the review aggregates.
func (s *CourseService) Analytics(principal model.Principal, courseID uint) (*dto.CourseAnalyticsResponse, error) {
	if _, err := s.findOwnedCourse(principal, courseID); err != nil {
		return nil, err
	}

	enrollStats, err := s.enrollmentRepo.StatsByCourse(courseID)
	if err != nil {
		return nil, err
	}
	ratingStats, err := s.reviewRepo.StatsByCourse(courseID)
	if err != nil {
		return nil, err
	}
	ratingDist, err := s.reviewRepo.RatingDistributionByCourse(courseID)
	if err != nil {
		return nil, err
	}
	progressDist, err := s.enrollmentRepo.ProgressDistributionByCourse(courseID)
	if err != nil {
		return nil, err
	}

	resp := dto.CourseAnalyticsResponse{
		TotalStudents:        int(enrollStats.TotalStudents),
		CompletedStudents:    int(enrollStats.CompletedStudents),
		AverageProgress:      enrollStats.AverageProgress,
		AverageRating:        ratingStats.AverageRating,
		TotalReviews:         int(ratingStats.ReviewCount),
		RatingDistribution:   ratingDist,
		ProgressDistribution: progressDist,
	}
	if enrollStats.TotalStudents > 0 {
		resp.CompletionRate = float64(enrollStats.CompletedStudents) / float64(enrollStats.TotalStudents) * 100
	}
	return &resp, nil
}

func (s *CourseService) ListCategories() ([]dto.CategoryResponse, error) {
	rows, err := s.categoryRepo.FindAllWithCourseCount()
	if err != nil {
		return nil, err
	}
	result := make([]dto.CategoryResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toCategoryResponse(&rows[i].Category, rows[i].CourseCount))
	}
	return result, nil
}

func (s *CourseService) GetCategory(slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, err
	}
	resp := toCategoryResponse(category, 0)
	return &resp, nil
}

func (s *CourseService) CreateCategory(principal model.Principal, req dto.CategoryCreateRequest) (*dto.CategoryResponse, error) {
	if !principal.IsAdmin() {
		return nil, apperr.Forbidden("only admins can create categories")
	}
	if _, err := s.categoryRepo.FindBySlug(req.Slug); err == nil {
		return nil, apperr.RuleViolation("category slug already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := model.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(&category, 0)
	return &resp, nil
}

// findOwnedCourse loads the course and enforces that the principal is its
// instructor or an admin.
func (s *CourseService) findOwnedCourse(principal model.Principal, id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.InstructorID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.Forbidden("you do not own this course")
	}
	return course, nil
}
