package model

import "time"

type Enrollment struct {
	ID                 uint             `gorm:"primarykey" json:"id"`
	StudentID          uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	Student            User             `json:"-" gorm:"foreignKey:StudentID"`
	CourseID           uint             `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_student_course"`
	Course             Course           `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	ProgressPercentage float64          `json:"progress_percentage" gorm:"type:decimal(5,2);not null;default:0"`
	Completed          bool             `json:"completed" gorm:"not null;default:false"`
	EnrolledDate       time.Time        `json:"enrolled_date" gorm:"autoCreateTime"`
	CompletedDate      *time.Time       `json:"completed_date,omitempty"`
	LessonProgress     []LessonProgress `json:"lesson_progress,omitempty" gorm:"foreignKey:EnrollmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
