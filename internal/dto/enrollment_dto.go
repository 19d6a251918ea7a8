package dto

import "time"

type EnrollRequest struct {
	Course uint `json:"course" binding:"required"`
}

type CompleteLessonRequest struct {
	LessonID uint `json:"lesson_id" binding:"required"`
}

type LessonProgressResponse struct {
	ID            uint           `json:"id"`
	Lesson        LessonResponse `json:"lesson"`
	Completed     bool           `json:"completed"`
	CompletedDate *time.Time     `json:"completed_date,omitempty"`
}

type EnrollmentResponse struct {
	ID                 uint                     `json:"id"`
	Course             CourseSummaryResponse    `json:"course"`
	ProgressPercentage float64                  `json:"progress_percentage"`
	Completed          bool                     `json:"completed"`
	EnrolledDate       time.Time                `json:"enrolled_date"`
	CompletedDate      *time.Time               `json:"completed_date,omitempty"`
	LessonProgress     []LessonProgressResponse `json:"lesson_progress,omitempty"`
}

type CompleteLessonResponse struct {
	Message  string  `json:"message"`
	Progress float64 `json:"progress"`
}
