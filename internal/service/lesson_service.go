package service

import (
	"errors"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"gorm.io/gorm"
)

type LessonService struct {
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
}

func NewLessonService(lessonRepo repository.LessonRepository, courseRepo repository.CourseRepository) *LessonService {
	return &LessonService{lessonRepo: lessonRepo, courseRepo: courseRepo}
}

// ListByCourse returns the ordered lessons of a course. Lessons of draft
// courses are visible only to the owning instructor and admins.
func (s *LessonService) ListByCourse(principal *model.Principal, courseID uint) ([]dto.LessonResponse, error) {
	if err := s.visibleCourse(principal, courseID); err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.FindByCourseID(courseID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		result = append(result, toLessonResponse(&lessons[i]))
	}
	return result, nil
}

func (s *LessonService) GetLesson(principal *model.Principal, id uint) (*dto.LessonResponse, error) {
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		return nil, err
	}
	if err := s.visibleCourse(principal, lesson.CourseID); err != nil {
		return nil, err
	}
	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *LessonService) CreateLesson(principal model.Principal, courseID uint, req dto.LessonCreateRequest) (*dto.LessonResponse, error) {
	if _, err := s.ownedCourse(principal, courseID); err != nil {
		return nil, err
	}
	if err := validateLessonContent(req.LessonType, req.VideoURL, req.TextContent); err != nil {
		return nil, err
	}

	lesson := model.Lesson{
		CourseID:      courseID,
		Title:         req.Title,
		Description:   req.Description,
		LessonType:    req.LessonType,
		VideoURL:      req.VideoURL,
		TextContent:   req.TextContent,
		Order:         req.Order,
		Duration:      req.Duration,
		IsFreePreview: req.IsFreePreview,
	}
	if lesson.LessonType == "" {
		lesson.LessonType = "video"
	}
	if err := s.lessonRepo.Create(&lesson); err != nil {
		return nil, err
	}
	resp := toLessonResponse(&lesson)
	return &resp, nil
}

func (s *LessonService) UpdateLesson(principal model.Principal, lessonID uint, req dto.LessonUpdateRequest) (*dto.LessonResponse, error) {
	lesson, err := s.ownedLesson(principal, lessonID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.LessonType != nil {
		lesson.LessonType = *req.LessonType
	}
	if req.VideoURL != nil {
		lesson.VideoURL = *req.VideoURL
	}
	if req.TextContent != nil {
		lesson.TextContent = *req.TextContent
	}
	if req.Order != nil {
		lesson.Order = *req.Order
	}
	if req.Duration != nil {
		lesson.Duration = *req.Duration
	}
	if req.IsFreePreview != nil {
		lesson.IsFreePreview = *req.IsFreePreview
	}

	if err := validateLessonContent(lesson.LessonType, lesson.VideoURL, lesson.TextContent); err != nil {
		return nil, err
	}
	if err := s.lessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	resp := toLessonResponse(lesson)
	return &resp, nil
}

func (s *LessonService) DeleteLesson(principal model.Principal, lessonID uint) error {
	if _, err := s.ownedLesson(principal, lessonID); err != nil {
		return err
	}
	return s.lessonRepo.Delete(lessonID)
}

func validateLessonContent(lessonType, videoURL, textContent string) error {
	switch lessonType {
	case "", "video":
		if videoURL == "" {
			return apperr.Validation("video lessons require a video_url")
		}
	case "text":
		if textContent == "" {
			return apperr.Validation("text lessons require text_content")
		}
	}
	return nil
}

// visibleCourse mirrors the catalog rule: published courses are public, draft
// courses exist only for their instructor and admins.
func (s *LessonService) visibleCourse(principal *model.Principal, courseID uint) error {
	course, err := s.courseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("course not found")
		}
		return err
	}
	if course.Status != model.CourseStatusPublished {
		if principal == nil || (course.InstructorID != principal.ID && !principal.IsAdmin()) {
			return apperr.NotFound("course not found")
		}
	}
	return nil
}

func (s *LessonService) ownedCourse(principal model.Principal, courseID uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(courseID)
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

func (s *LessonService) ownedLesson(principal model.Principal, lessonID uint) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		return nil, err
	}
	if _, err := s.ownedCourse(principal, lesson.CourseID); err != nil {
		return nil, err
	}
	return lesson, nil
}
