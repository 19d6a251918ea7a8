package repository

import (
	"github.com/lshigami/academe/internal/model"
	"gorm.io/gorm"
)

// CourseEnrollmentStats aggregates enrollment figures for the instructor
// analytics endpoint.
type CourseEnrollmentStats struct {
	TotalStudents     int64
	CompletedStudents int64
	AverageProgress   float64
}

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	FindByID(id uint) (*model.Enrollment, error)
	FindByIDWithProgress(id uint) (*model.Enrollment, error)
	FindAllByStudent(studentID uint) ([]model.Enrollment, error)
	Exists(studentID, courseID uint) (bool, error)
	CountByCourse(courseID uint) (int64, error)
	StatsByCourse(courseID uint) (*CourseEnrollmentStats, error)
	ProgressDistributionByCourse(courseID uint) (map[string]int, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	// GORM creates the associated lesson progress rows along with the
	// enrollment when they are populated.
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByID(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.First(&enrollment, id).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindByIDWithProgress(id uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.
		Preload("Course.Instructor").
		Preload("LessonProgress.Lesson").
		First(&enrollment, id).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindAllByStudent(studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.
		Preload("Course.Instructor").
		Where("student_id = ?", studentID).
		Order("enrolled_date DESC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepository) Exists(studentID, courseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) StatsByCourse(courseID uint) (*CourseEnrollmentStats, error) {
	var stats CourseEnrollmentStats
	if err := r.db.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&stats.TotalStudents).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Enrollment{}).Where("course_id = ? AND completed = ?", courseID, true).Count(&stats.CompletedStudents).Error; err != nil {
		return nil, err
	}
	if stats.TotalStudents > 0 {
		var avg *float64
		err := r.db.Model(&model.Enrollment{}).
			Select("AVG(progress_percentage)").
			Where("course_id = ?", courseID).
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		if avg != nil {
			stats.AverageProgress = *avg
		}
	}
	return &stats, nil
}

func (r *enrollmentRepository) ProgressDistributionByCourse(courseID uint) (map[string]int, error) {
	buckets := map[string]int{}
	ranges := []struct {
		label    string
		from, to float64
	}{
		{"0-25%", 0, 25},
		{"25-50%", 25, 50},
		{"50-75%", 50, 75},
		{"75-100%", 75, 101},
	}
	for _, rng := range ranges {
		var count int64
		err := r.db.Model(&model.Enrollment{}).
			Where("course_id = ? AND progress_percentage >= ? AND progress_percentage < ?", courseID, rng.from, rng.to).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		buckets[rng.label] = int(count)
	}
	return buckets, nil
}
