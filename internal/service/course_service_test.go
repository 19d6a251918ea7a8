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

func newCourseService(db *gorm.DB) *CourseService {
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewReviewRepository(db),
	)
}

func TestListCoursesOnlyPublished(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	createCourse(t, db, instructor, model.CourseStatusDraft, 1)
	svc := newCourseService(db)

	courses, err := svc.ListCourses("")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 2, courses[0].TotalLessons)
}

func TestListCoursesSearchMatchesInstructor(t *testing.T) {
	db := newTestDB(t)
	jane := &model.User{
		Email:     "jane.smith@example.com",
		Password:  "irrelevant-hash",
		FirstName: "Jane",
		LastName:  "Smith",
		Role:      model.RoleInstructor,
	}
	require.NoError(t, db.Create(jane).Error)
	other := createUser(t, db, "bob@example.com", model.RoleInstructor)
	createCourse(t, db, jane, model.CourseStatusPublished, 0)
	createCourse(t, db, other, model.CourseStatusPublished, 0)
	svc := newCourseService(db)

	courses, err := svc.ListCourses("jane.smith")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "jane.smith@example.com", courses[0].Instructor.Email)

	// Name fields match too, case-insensitively.
	courses, err = svc.ListCourses("SMITH")
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	courses, err = svc.ListCourses("go from scratch")
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	courses, err = svc.ListCourses("nobody")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestGetCourseDraftVisibility(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	stranger := createUser(t, db, "student@example.com", model.RoleStudent)
	admin := createUser(t, db, "admin@example.com", model.RoleAdmin)
	course := createCourse(t, db, instructor, model.CourseStatusDraft, 1)
	svc := newCourseService(db)

	// Anonymous and unrelated callers see a 404, not a 403, so drafts stay
	// unguessable.
	_, err := svc.GetCourse(nil, course.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	strangerPrincipal := principalOf(stranger)
	_, err = svc.GetCourse(&strangerPrincipal, course.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	ownerPrincipal := principalOf(instructor)
	detail, err := svc.GetCourse(&ownerPrincipal, course.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Lessons, 1)

	adminPrincipal := principalOf(admin)
	_, err = svc.GetCourse(&adminPrincipal, course.ID)
	require.NoError(t, err)
}

func TestCreateCourseInstructorOnly(t *testing.T) {
	db := newTestDB(t)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	svc := newCourseService(db)

	req := dto.CourseCreateRequest{Title: "New course", Description: "Something"}

	_, err := svc.CreateCourse(principalOf(student), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	created, err := svc.CreateCourse(principalOf(instructor), req)
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusDraft, created.Status)
	assert.Equal(t, "beginner", created.Difficulty)
}

func TestUpdateCourseOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	other := createUser(t, db, "other@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusDraft, 0)
	svc := newCourseService(db)

	status := model.CourseStatusPublished
	_, err := svc.UpdateCourse(principalOf(other), course.ID, dto.CourseUpdateRequest{Status: &status})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	updated, err := svc.UpdateCourse(principalOf(instructor), course.ID, dto.CourseUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.CourseStatusPublished, updated.Status)
}

func TestCategoriesCRUD(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin@example.com", model.RoleAdmin)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	svc := newCourseService(db)

	req := dto.CategoryCreateRequest{Name: "Programming", Slug: "programming"}

	_, err := svc.CreateCategory(principalOf(student), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	created, err := svc.CreateCategory(principalOf(admin), req)
	require.NoError(t, err)
	assert.Equal(t, "programming", created.Slug)

	_, err = svc.CreateCategory(principalOf(admin), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindRuleViolation))

	got, err := svc.GetCategory("programming")
	require.NoError(t, err)
	assert.Equal(t, "Programming", got.Name)

	all, err := svc.ListCategories()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Zero(t, all[0].CourseCount)
}

func TestAnalyticsAggregates(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	enrollSvc := newEnrollmentService(db)
	reviewSvc := newReviewService(db)
	svc := newCourseService(db)

	// Two students: one finishes the course and reviews it, one stays at zero.
	finisher := createUser(t, db, "done@example.com", model.RoleStudent)
	slacker := createUser(t, db, "slow@example.com", model.RoleStudent)

	enrollment, err := enrollSvc.Enroll(principalOf(finisher), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)
	for _, lesson := range course.Lessons {
		_, err := enrollSvc.CompleteLesson(principalOf(finisher), enrollment.ID, dto.CompleteLessonRequest{LessonID: lesson.ID})
		require.NoError(t, err)
	}
	_, err = enrollSvc.Enroll(principalOf(slacker), dto.EnrollRequest{Course: course.ID})
	require.NoError(t, err)

	_, err = reviewSvc.CreateReview(principalOf(finisher), dto.ReviewCreateRequest{Course: course.ID, Rating: 4})
	require.NoError(t, err)

	analytics, err := svc.Analytics(principalOf(instructor), course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, analytics.TotalStudents)
	assert.Equal(t, 1, analytics.CompletedStudents)
	assert.InDelta(t, 50.0, analytics.CompletionRate, 0.001)
	assert.InDelta(t, 50.0, analytics.AverageProgress, 0.001)
	assert.Equal(t, 1, analytics.TotalReviews)
	assert.InDelta(t, 4.0, analytics.AverageRating, 0.001)
	assert.Equal(t, 1, analytics.RatingDistribution["4"])
	assert.Equal(t, 1, analytics.ProgressDistribution["0-25%"])
	assert.Equal(t, 1, analytics.ProgressDistribution["75-100%"])

	// Analytics are owner-only.
	intruder := createUser(t, db, "other@example.com", model.RoleInstructor)
	_, err = svc.Analytics(principalOf(intruder), course.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}
