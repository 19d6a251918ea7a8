package service

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lshigami/academe/config"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Quiz{},
		&model.Question{},
		&model.Answer{},
		&model.QuizAttempt{},
		&model.StudentAnswer{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.Review{},
		&model.Discussion{},
		&model.Comment{},
	))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLHours = 1
	return cfg
}

func createUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		Password:  "irrelevant-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func principalOf(user *model.User) model.Principal {
	return model.Principal{ID: user.ID, Email: user.Email, Role: user.Role}
}

// createCourse seeds a course with the given number of lessons, ordered 0..n-1.
func createCourse(t *testing.T, db *gorm.DB, instructor *model.User, status string, lessonCount int) *model.Course {
	t.Helper()
	course := &model.Course{
		Title:        "Go from Scratch",
		Description:  "A course about Go",
		InstructorID: instructor.ID,
		Difficulty:   "beginner",
		Status:       status,
	}
	for i := 0; i < lessonCount; i++ {
		course.Lessons = append(course.Lessons, model.Lesson{
			Title:      fmt.Sprintf("Lesson %d", i+1),
			LessonType: "video",
			VideoURL:   "https://example.com/video",
			Order:      i,
		})
	}
	require.NoError(t, db.Create(course).Error)
	return course
}

// createQuiz seeds a quiz on the lesson with questionCount questions worth
// pointsEach apiece; the first answer of every question is the correct one.
func createQuiz(t *testing.T, db *gorm.DB, lessonID uint, questionCount, pointsEach int) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		LessonID:           lessonID,
		Title:              "Checkpoint Quiz",
		PassingScore:       70,
		MaxAttempts:        3,
		ShowCorrectAnswers: true,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, model.Question{
			QuestionText: fmt.Sprintf("Question %d", i+1),
			QuestionType: model.QuestionTypeMultipleChoice,
			Points:       pointsEach,
			Order:        i,
			Answers: []model.Answer{
				{AnswerText: "right", IsCorrect: true, Order: 0},
				{AnswerText: "wrong", IsCorrect: false, Order: 1},
			},
		})
	}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func newEnrollmentService(db *gorm.DB) *EnrollmentService {
	return NewEnrollmentService(
		db,
		repository.NewEnrollmentRepository(db),
		repository.NewLessonProgressRepository(db),
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
		repository.NewReviewRepository(db),
	)
}

func newAttemptService(db *gorm.DB) *QuizAttemptService {
	return NewQuizAttemptService(
		db,
		repository.NewQuizRepository(db),
		repository.NewQuizAttemptRepository(db),
	)
}
