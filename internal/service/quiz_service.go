package service

import (
	"errors"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"gorm.io/gorm"
)

// QuizService is the student-facing read side of the quiz engine. Responses
// never expose which answer options are correct.
type QuizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo}
}

func (s *QuizService) ListQuizzes() ([]dto.QuizSummaryResponse, error) {
	rows, err := s.quizRepo.FindAllWithQuestionCount()
	if err != nil {
		return nil, err
	}
	result := make([]dto.QuizSummaryResponse, 0, len(rows))
	for i := range rows {
		summary := toQuizSummary(&rows[i].Quiz)
		summary.TotalQuestions = rows[i].QuestionCount
		result = append(result, summary)
	}
	return result, nil
}

func (s *QuizService) GetQuiz(id uint) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, err
	}

	summary := toQuizSummary(quiz)
	summary.TotalQuestions = len(quiz.Questions)
	summary.TotalPoints = quiz.TotalPoints()

	detail := dto.QuizDetailResponse{
		QuizSummaryResponse: summary,
		ShowCorrectAnswers:  quiz.ShowCorrectAnswers,
	}
	detail.Questions = make([]dto.QuestionResponse, 0, len(quiz.Questions))
	for i := range quiz.Questions {
		detail.Questions = append(detail.Questions, toQuestionResponse(&quiz.Questions[i]))
	}
	return &detail, nil
}

func (s *QuizService) GetQuizByLesson(lessonID uint) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizRepo.FindByLessonID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, err
	}
	return s.GetQuiz(quiz.ID)
}

func toQuizSummary(quiz *model.Quiz) dto.QuizSummaryResponse {
	return dto.QuizSummaryResponse{
		ID:               quiz.ID,
		LessonID:         quiz.LessonID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		PassingScore:     quiz.PassingScore,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		MaxAttempts:      quiz.MaxAttempts,
		TotalPoints:      quiz.TotalPoints(),
		TotalQuestions:   len(quiz.Questions),
		CreatedAt:        quiz.CreatedAt,
	}
}

// toQuestionResponse strips the correctness flag from the answer options.
func toQuestionResponse(question *model.Question) dto.QuestionResponse {
	resp := dto.QuestionResponse{
		ID:           question.ID,
		QuestionText: question.QuestionText,
		QuestionType: question.QuestionType,
		Points:       question.Points,
		Order:        question.Order,
	}
	resp.Answers = make([]dto.AnswerOptionResponse, 0, len(question.Answers))
	for _, answer := range question.Answers {
		resp.Answers = append(resp.Answers, dto.AnswerOptionResponse{
			ID:         answer.ID,
			AnswerText: answer.AnswerText,
			Order:      answer.Order,
		})
	}
	return resp
}
