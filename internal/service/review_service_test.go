package service

import (
	"testing"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

func enrollStudent(t *testing.T, db *gorm.DB, student *model.User, course *model.Course) {
	t.Helper()
	require.NoError(t, db.Create(&model.Enrollment{StudentID: student.ID, CourseID: course.ID}).Error)
}

func TestCreateReviewRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newReviewService(db)

	_, err := svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
	assert.Contains(t, err.Error(), "enrolled")
}

func TestCreateReviewRejectsInstructor(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newReviewService(db)

	_, err := svc.CreateReview(principalOf(instructor), dto.ReviewCreateRequest{Course: course.ID, Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
}

func TestCreateReviewOncePerCourse(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newReviewService(db)

	review, err := svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 4, ReviewText: "solid"})
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)

	_, err = svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 5})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
	assert.Contains(t, err.Error(), "already reviewed")
}

func TestReviewUniqueIndexRejectsDuplicateInsert(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newReviewService(db)

	require.NoError(t, db.Create(&model.Review{
		CourseID:  course.ID,
		StudentID: student.ID,
		Rating:    5,
	}).Error)

	// Even when the insert bypasses the service's pre-check, the unique index
	// on (course, student) rejects the second review as a translated
	// duplicate-key error.
	err := db.Create(&model.Review{
		CourseID:  course.ID,
		StudentID: student.ID,
		Rating:    3,
	}).Error
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Through the service the same duplicate reads as a rule violation.
	_, err = svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 3})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
}

func TestUpdateReviewAuthorOrAdmin(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	intruder := createUser(t, db, "other@example.com", model.RoleStudent)
	admin := createUser(t, db, "admin@example.com", model.RoleAdmin)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newReviewService(db)

	review, err := svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 3})
	require.NoError(t, err)

	newRating := 5
	_, err = svc.UpdateReview(principalOf(intruder), review.ID, dto.ReviewUpdateRequest{Rating: &newRating})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	updated, err := svc.UpdateReview(principalOf(admin), review.ID, dto.ReviewUpdateRequest{Rating: &newRating})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
}

func TestDeleteReview(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newReviewService(db)

	review, err := svc.CreateReview(principalOf(student), dto.ReviewCreateRequest{Course: course.ID, Rating: 2})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReview(principalOf(student), review.ID))

	reviews, err := svc.ListByCourse(course.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
