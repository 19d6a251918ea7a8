package service

import (
	"testing"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesProgressRows(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 4)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	assert.Len(t, enrollment.LessonProgress, 4)
	assert.Zero(t, enrollment.ProgressPercentage)
	assert.False(t, enrollment.Completed)
}

func TestEnrollRejectsDraftCourse(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusDraft, 2)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
}

func TestEnrollRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	_, err = svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
	assert.Contains(t, err.Error(), "already enrolled")
}

func TestEnrollRejectsOwnInstructor(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newEnrollmentService(db)

	_, err := svc.Enroll(principalOf(instructor), dto.EnrollRequest{Course: course.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))
}

func TestCompleteLessonRecomputesProgress(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 4)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	resp, err := svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: course.Lessons[0].ID})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, resp.Progress, 0.001)

	// Completing the same lesson again is idempotent.
	resp, err = svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: course.Lessons[0].ID})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, resp.Progress, 0.001)
}

func TestCompleteLessonStampsCompletionOnce(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	for _, lesson := range course.Lessons {
		_, err := svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: lesson.ID})
		require.NoError(t, err)
	}

	var stored model.Enrollment
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	assert.True(t, stored.Completed)
	require.NotNil(t, stored.CompletedDate)
	firstStamp := *stored.CompletedDate

	// Re-completing a lesson must not move the completion date.
	_, err = svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: course.Lessons[0].ID})
	require.NoError(t, err)
	require.NoError(t, db.First(&stored, enrollment.ID).Error)
	require.NotNil(t, stored.CompletedDate)
	assert.Equal(t, firstStamp.Unix(), stored.CompletedDate.Unix())
	assert.True(t, stored.CompletedDate.Equal(firstStamp))
}

func TestCompleteLessonWithoutProgressRow(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	// A lesson added after enrollment has no progress row.
	late := model.Lesson{CourseID: course.ID, Title: "Late addition", LessonType: "video", VideoURL: "https://example.com/v", Order: 99}
	require.NoError(t, db.Create(&late).Error)

	_, err = svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: late.ID})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestLateLessonsDoNotChangeDenominator(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	late := model.Lesson{CourseID: course.ID, Title: "Late addition", LessonType: "video", VideoURL: "https://example.com/v", Order: 99}
	require.NoError(t, db.Create(&late).Error)

	// Two original lessons, both done: 100% even though a third lesson exists.
	for _, lesson := range course.Lessons {
		_, err := svc.CompleteLesson(principalOf(student), enrollment.ID, dto.CompleteLessonRequest{LessonID: lesson.ID})
		require.NoError(t, err)
	}
	got, err := svc.GetEnrollment(principalOf(student), enrollment.ID)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.ProgressPercentage, 0.001)
	assert.True(t, got.Completed)
}

func TestGetEnrollmentIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	intruder := createUser(t, db, "other@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newEnrollmentService(db)

	enrollment, err := svc.Enroll(principalOf(student), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	_, err = svc.GetEnrollment(principalOf(intruder), enrollment.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
