package service

import (
	"errors"
	"time"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// EnrollmentService manages enrollments and the per-lesson progress rows that
// drive the progress percentage. The rows are materialized at enroll time, so
// lessons added to a course afterwards do not change existing students'
// denominators.
type EnrollmentService struct {
	db             *gorm.DB
	enrollmentRepo repository.EnrollmentRepository
	progressRepo   repository.LessonProgressRepository
	courseRepo     repository.CourseRepository
	lessonRepo     repository.LessonRepository
	reviewRepo     repository.ReviewRepository
}

func NewEnrollmentService(
	db *gorm.DB,
	enrollmentRepo repository.EnrollmentRepository,
	progressRepo repository.LessonProgressRepository,
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	reviewRepo repository.ReviewRepository,
) *EnrollmentService {
	return &EnrollmentService{
		db:             db,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		reviewRepo:     reviewRepo,
	}
}

func (s *EnrollmentService) Enroll(principal model.Principal, req dto.EnrollRequest) (*dto.EnrollmentResponse, error) {
	course, err := s.courseRepo.FindByID(req.Course)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if course.Status != model.CourseStatusPublished {
		return nil, apperr.RuleViolation("course is not open for enrollment")
	}
	if course.InstructorID == principal.ID {
		return nil, apperr.RuleViolation("instructors cannot enroll in their own course")
	}

	exists, err := s.enrollmentRepo.Exists(principal.ID, course.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.RuleViolation("already enrolled in this course")
	}

	lessons, err := s.lessonRepo.FindByCourseID(course.ID)
	if err != nil {
		return nil, err
	}

	enrollment := model.Enrollment{
		StudentID: principal.ID,
		CourseID:  course.ID,
	}
	for _, lesson := range lessons {
		enrollment.LessonProgress = append(enrollment.LessonProgress, model.LessonProgress{
			LessonID: lesson.ID,
		})
	}
	if err := s.enrollmentRepo.Create(&enrollment); err != nil {
		// The unique index backstops a racing duplicate enroll.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.RuleViolation("already enrolled in this course")
		}
		return nil, err
	}
	log.Info().Uint("enrollment_id", enrollment.ID).Uint("course_id", course.ID).Int("lessons", len(lessons)).Msg("Student enrolled")

	return s.GetEnrollment(principal, enrollment.ID)
}

func (s *EnrollmentService) ListEnrollments(principal model.Principal) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollmentRepo.FindAllByStudent(principal.ID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		resp, err := s.toEnrollmentResponse(&enrollments[i], false)
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *EnrollmentService) GetEnrollment(principal model.Principal, id uint) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByIDWithProgress(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("enrollment not found")
		}
		return nil, err
	}
	if enrollment.StudentID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.NotFound("enrollment not found")
	}
	return s.toEnrollmentResponse(enrollment, true)
}

// CompleteLesson marks one lesson done and recomputes the enrollment
// percentage over the enrollment's materialized progress rows. The completion
// flag and date are stamped exactly once, when the percentage first reaches
// one hundred.
func (s *EnrollmentService) CompleteLesson(principal model.Principal, enrollmentID uint, req dto.CompleteLessonRequest) (*dto.CompleteLessonResponse, error) {
	enrollment, err := s.enrollmentRepo.FindByID(enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("enrollment not found")
		}
		return nil, err
	}
	if enrollment.StudentID != principal.ID {
		return nil, apperr.NotFound("enrollment not found")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var progress model.LessonProgress
		err := tx.
			Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, req.LessonID).
			First(&progress).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("lesson progress not found")
			}
			return err
		}

		if !progress.Completed {
			now := time.Now()
			progress.Completed = true
			progress.CompletedDate = &now
			if err := tx.Save(&progress).Error; err != nil {
				return err
			}
		}

		var total, completed int64
		if err := tx.Model(&model.LessonProgress{}).
			Where("enrollment_id = ?", enrollmentID).
			Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.LessonProgress{}).
			Where("enrollment_id = ? AND completed = ?", enrollmentID, true).
			Count(&completed).Error; err != nil {
			return err
		}

		if total > 0 {
			enrollment.ProgressPercentage = float64(completed) / float64(total) * 100
		}
		if enrollment.ProgressPercentage == 100 && !enrollment.Completed {
			now := time.Now()
			enrollment.Completed = true
			enrollment.CompletedDate = &now
			log.Info().Uint("enrollment_id", enrollment.ID).Msg("Course completed")
		}
		return tx.Save(enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	return &dto.CompleteLessonResponse{
		Message:  "lesson completed",
		Progress: enrollment.ProgressPercentage,
	}, nil
}

func (s *EnrollmentService) ListLessonProgress(principal model.Principal) ([]dto.LessonProgressResponse, error) {
	rows, err := s.progressRepo.FindAllByStudent(principal.ID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LessonProgressResponse, 0, len(rows))
	for i := range rows {
		result = append(result, toLessonProgressResponse(&rows[i]))
	}
	return result, nil
}

func (s *EnrollmentService) toEnrollmentResponse(enrollment *model.Enrollment, withProgress bool) (*dto.EnrollmentResponse, error) {
	summary, err := buildCourseSummary(&enrollment.Course, s.courseRepo, s.enrollmentRepo, s.reviewRepo)
	if err != nil {
		return nil, err
	}
	resp := dto.EnrollmentResponse{
		ID:                 enrollment.ID,
		Course:             summary,
		ProgressPercentage: enrollment.ProgressPercentage,
		Completed:          enrollment.Completed,
		EnrolledDate:       enrollment.EnrolledDate,
		CompletedDate:      enrollment.CompletedDate,
	}
	if withProgress {
		for i := range enrollment.LessonProgress {
			resp.LessonProgress = append(resp.LessonProgress, toLessonProgressResponse(&enrollment.LessonProgress[i]))
		}
	}
	return &resp, nil
}

func toLessonProgressResponse(progress *model.LessonProgress) dto.LessonProgressResponse {
	return dto.LessonProgressResponse{
		ID:            progress.ID,
		Lesson:        toLessonResponse(&progress.Lesson),
		Completed:     progress.Completed,
		CompletedDate: progress.CompletedDate,
	}
}
