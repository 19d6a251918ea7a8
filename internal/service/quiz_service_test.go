package service

import (
	"testing"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuizAggregatesAndOrdering(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 1)
	quiz := createQuiz(t, db, course.Lessons[0].ID, 3, 2)
	svc := NewQuizService(repository.NewQuizRepository(db))

	detail, err := svc.GetQuiz(quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.TotalQuestions)
	assert.Equal(t, 6, detail.TotalPoints)
	require.Len(t, detail.Questions, 3)
	assert.Equal(t, "Question 1", detail.Questions[0].QuestionText)
	// Every question exposes its options without the correctness flag; the
	// response type simply has no such field.
	assert.Len(t, detail.Questions[0].Answers, 2)
}

func TestGetQuizByLesson(t *testing.T) {
	db := newTestDB(t)
	instructor := createUser(t, db, "teacher@example.com", model.RoleInstructor)
	course := createCourse(t, db, instructor, model.CourseStatusPublished, 2)
	quiz := createQuiz(t, db, course.Lessons[0].ID, 1, 1)
	svc := NewQuizService(repository.NewQuizRepository(db))

	detail, err := svc.GetQuizByLesson(course.Lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, detail.ID)

	_, err = svc.GetQuizByLesson(course.Lessons[1].ID)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
