package model

import "time"

// LessonProgress rows are materialized in bulk when the enrollment is created,
// one per lesson existing at that time. Lessons added to the course later have
// no row and stay out of the percentage denominator.
type LessonProgress struct {
	ID            uint       `gorm:"primarykey" json:"id"`
	EnrollmentID  uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_progress_enrollment_lesson"`
	LessonID      uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_progress_enrollment_lesson"`
	Lesson        Lesson     `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	Completed     bool       `json:"completed" gorm:"not null;default:false"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}
