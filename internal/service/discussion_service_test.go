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

func newDiscussionService(db *gorm.DB) *DiscussionService {
	return NewDiscussionService(
		repository.NewDiscussionRepository(db),
		repository.NewCommentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
	)
}

func TestCreateDiscussionRequiresParticipation(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	svc := newDiscussionService(db)

	req := dto.DiscussionCreateRequest{Course: course.ID, Title: "Stuck on lesson 1", Content: "help"}

	_, err := svc.CreateDiscussion(principalOf(student), req)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	// The instructor participates without an enrollment.
	_, err = svc.CreateDiscussion(principalOf(instructor), req)
	require.NoError(t, err)

	enrollStudent(t, db, student, course)
	_, err = svc.CreateDiscussion(principalOf(student), req)
	require.NoError(t, err)
}

func TestCommentInstructorReplyFlag(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newDiscussionService(db)

	discussion, err := svc.CreateDiscussion(principalOf(student), dto.DiscussionCreateRequest{Course: course.ID, Title: "Q", Content: "?"})
	require.NoError(t, err)

	fromStudent, err := svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: discussion.ID, Content: "bump"})
	require.NoError(t, err)
	assert.False(t, fromStudent.IsInstructorReply)

	fromInstructor, err := svc.CreateComment(principalOf(instructor), dto.CommentCreateRequest{Discussion: discussion.ID, Content: "answered"})
	require.NoError(t, err)
	assert.True(t, fromInstructor.IsInstructorReply)
}

func TestCommentParentMustMatchDiscussion(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newDiscussionService(db)

	first, err := svc.CreateDiscussion(principalOf(student), dto.DiscussionCreateRequest{Course: course.ID, Title: "A", Content: "a"})
	require.NoError(t, err)
	second, err := svc.CreateDiscussion(principalOf(student), dto.DiscussionCreateRequest{Course: course.ID, Title: "B", Content: "b"})
	require.NoError(t, err)

	parent, err := svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: first.ID, Content: "root"})
	require.NoError(t, err)

	_, err = svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: second.ID, ParentID: &parent.ID, Content: "cross-thread"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	reply, err := svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: first.ID, ParentID: &parent.ID, Content: "reply"})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)
}

func TestDiscussionDetailIncludesComments(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newDiscussionService(db)

	discussion, err := svc.CreateDiscussion(principalOf(student), dto.DiscussionCreateRequest{Course: course.ID, Title: "Q", Content: "?"})
	require.NoError(t, err)
	_, err = svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: discussion.ID, Content: "first"})
	require.NoError(t, err)
	_, err = svc.CreateComment(principalOf(instructor), dto.CommentCreateRequest{Discussion: discussion.ID, Content: "second"})
	require.NoError(t, err)

	detail, err := svc.GetDiscussion(discussion.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.CommentCount)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "first", detail.Comments[0].Content)
}

func TestUpdateAndDeleteCommentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	student := createUser(t, db, "student@example.com", model.RoleStudent)
	intruder := createUser(t, db, "other@example.com", model.RoleStudent)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	enrollStudent(t, db, student, course)
	svc := newDiscussionService(db)

	discussion, err := svc.CreateDiscussion(principalOf(student), dto.DiscussionCreateRequest{Course: course.ID, Title: "Q", Content: "?"})
	require.NoError(t, err)
	comment, err := svc.CreateComment(principalOf(student), dto.CommentCreateRequest{Discussion: discussion.ID, Content: "original"})
	require.NoError(t, err)

	_, err = svc.UpdateComment(principalOf(intruder), comment.ID, dto.CommentUpdateRequest{Content: "hijacked"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	updated, err := svc.UpdateComment(principalOf(student), comment.ID, dto.CommentUpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.DeleteComment(principalOf(student), comment.ID))
}
