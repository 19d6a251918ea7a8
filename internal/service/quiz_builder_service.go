package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizBuilderService is the instructor-facing authoring side: it creates a
// lesson's quiz together with all questions and answer options in one call.
type QuizBuilderService struct {
	quizRepo   repository.QuizRepository
	lessonRepo repository.LessonRepository
	courseRepo repository.CourseRepository
}

func NewQuizBuilderService(
	quizRepo repository.QuizRepository,
	lessonRepo repository.LessonRepository,
	courseRepo repository.CourseRepository,
) *QuizBuilderService {
	return &QuizBuilderService{quizRepo: quizRepo, lessonRepo: lessonRepo, courseRepo: courseRepo}
}

func (s *QuizBuilderService) CreateQuiz(principal model.Principal, lessonID uint, req dto.QuizCreateRequest) (*dto.QuizDetailResponse, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("lesson not found")
		}
		return nil, err
	}
	course, err := s.courseRepo.FindByID(lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.Forbidden("you do not own this course")
	}

	if _, err := s.quizRepo.FindByLessonID(lessonID); err == nil {
		return nil, apperr.RuleViolation("lesson already has a quiz")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	quiz := model.Quiz{
		LessonID:           lessonID,
		Title:              req.Title,
		Description:        req.Description,
		PassingScore:       req.PassingScore,
		TimeLimitMinutes:   req.TimeLimitMinutes,
		MaxAttempts:        req.MaxAttempts,
		ShowCorrectAnswers: true,
	}
	if quiz.PassingScore == 0 {
		quiz.PassingScore = 70
	}
	if quiz.MaxAttempts == 0 {
		quiz.MaxAttempts = 3
	}
	if req.ShowCorrectAnswers != nil {
		quiz.ShowCorrectAnswers = *req.ShowCorrectAnswers
	}

	for qi, q := range req.Questions {
		question, err := buildQuestion(qi, q)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		return nil, err
	}
	log.Info().Uint("quiz_id", quiz.ID).Uint("lesson_id", lessonID).Int("questions", len(quiz.Questions)).Msg("Quiz created")

	summary := toQuizSummary(&quiz)
	detail := dto.QuizDetailResponse{
		QuizSummaryResponse: summary,
		ShowCorrectAnswers:  quiz.ShowCorrectAnswers,
	}
	for i := range quiz.Questions {
		detail.Questions = append(detail.Questions, toQuestionResponse(&quiz.Questions[i]))
	}
	return &detail, nil
}

// buildQuestion validates one authored question. Every question must have
// exactly one correct option, and true/false questions exactly two options.
func buildQuestion(index int, req dto.QuestionCreateRequest) (model.Question, error) {
	question := model.Question{
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		Points:       req.Points,
		Order:        req.Order,
		Explanation:  req.Explanation,
	}
	if question.Order == 0 {
		question.Order = index
	}

	if req.QuestionType == model.QuestionTypeTrueFalse && len(req.Answers) != 2 {
		return question, apperr.Validation(fmt.Sprintf("question %d: true/false questions need exactly 2 answers", index+1))
	}

	correct := 0
	for ai, a := range req.Answers {
		if a.IsCorrect {
			correct++
		}
		answer := model.Answer{
			AnswerText: a.AnswerText,
			IsCorrect:  a.IsCorrect,
			Order:      a.Order,
		}
		if answer.Order == 0 {
			answer.Order = ai
		}
		question.Answers = append(question.Answers, answer)
	}
	if correct != 1 {
		return question, apperr.Validation(fmt.Sprintf("question %d: exactly one answer must be marked correct", index+1))
	}
	return question, nil
}
