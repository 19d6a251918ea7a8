package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizAttemptService drives the attempt lifecycle: start, submit, review.
// Starting and submitting are compound writes and run inside transactions.
type QuizAttemptService struct {
	db          *gorm.DB
	quizRepo    repository.QuizRepository
	attemptRepo repository.QuizAttemptRepository
}

func NewQuizAttemptService(
	db *gorm.DB,
	quizRepo repository.QuizRepository,
	attemptRepo repository.QuizAttemptRepository,
) *QuizAttemptService {
	return &QuizAttemptService{db: db, quizRepo: quizRepo, attemptRepo: attemptRepo}
}

// StartAttempt opens a new attempt unless the student has exhausted the
// quiz's attempt limit. The attempt number is the count of prior attempts
// plus one; the unique index on (student, quiz, attempt_number) rejects a
// racing duplicate start.
func (s *QuizAttemptService) StartAttempt(principal model.Principal, quizID uint) (*dto.AttemptSummaryResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, err
	}

	var attempt model.QuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.QuizAttempt{}).
			Where("student_id = ? AND quiz_id = ?", principal.ID, quizID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(quiz.MaxAttempts) {
			return apperr.RuleViolation(fmt.Sprintf("maximum attempts (%d) reached", quiz.MaxAttempts))
		}

		attempt = model.QuizAttempt{
			StudentID:     principal.ID,
			QuizID:        quizID,
			AttemptNumber: int(count) + 1,
			TotalPoints:   quiz.TotalPoints(),
		}
		if err := tx.Create(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.RuleViolation("an attempt with this number already exists")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Uint("attempt_id", attempt.ID).Uint("quiz_id", quizID).Int("number", attempt.AttemptNumber).Msg("Attempt started")
	resp := toAttemptSummary(&attempt, quiz.Title)
	return &resp, nil
}

// SubmitQuiz grades the latest active attempt. Answer pairs that do not
// belong to the quiz are skipped; a pair repeating a question within the same
// submission is rejected outright. The score is recomputed from all answer
// rows of the attempt, so the computation is idempotent.
func (s *QuizAttemptService) SubmitQuiz(principal model.Principal, quizID uint, req dto.SubmitQuizRequest) (*dto.AttemptDetailResponse, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("quiz not found")
		}
		return nil, err
	}

	questions := make(map[uint]*model.Question, len(quiz.Questions))
	for i := range quiz.Questions {
		questions[quiz.Questions[i].ID] = &quiz.Questions[i]
	}

	var attemptID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var attempt model.QuizAttempt
		err := tx.
			Where("student_id = ? AND quiz_id = ? AND completed_at IS NULL", principal.ID, quizID).
			Order("started_at DESC").
			First(&attempt).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("no active attempt found")
			}
			return err
		}
		attemptID = attempt.ID

		seen := make(map[uint]bool, len(req.Answers))
		for _, pair := range req.Answers {
			question, ok := questions[pair.QuestionID]
			if !ok {
				continue
			}
			var selected *model.Answer
			for i := range question.Answers {
				if question.Answers[i].ID == pair.AnswerID {
					selected = &question.Answers[i]
					break
				}
			}
			if selected == nil {
				continue
			}
			if seen[question.ID] {
				return apperr.RuleViolation("duplicate answer for question")
			}
			seen[question.ID] = true

			studentAnswer := model.StudentAnswer{
				AttemptID:        attempt.ID,
				QuestionID:       question.ID,
				SelectedAnswerID: selected.ID,
				IsCorrect:        selected.IsCorrect,
			}
			if selected.IsCorrect {
				studentAnswer.PointsEarned = question.Points
			}
			if err := tx.Create(&studentAnswer).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		attempt.CompletedAt = &now
		attempt.TimeTakenSeconds = req.TimeTakenSeconds

		return recomputeScore(tx, &attempt, quiz)
	})
	if err != nil {
		return nil, err
	}

	return s.GetAttempt(principal, attemptID)
}

// recomputeScore re-derives the attempt aggregates from every answer row the
// attempt has, then persists the attempt.
func recomputeScore(tx *gorm.DB, attempt *model.QuizAttempt, quiz *model.Quiz) error {
	var answers []model.StudentAnswer
	if err := tx.Where("attempt_id = ?", attempt.ID).Find(&answers).Error; err != nil {
		return err
	}

	earned := 0
	for _, a := range answers {
		earned += a.PointsEarned
	}
	total := quiz.TotalPoints()

	attempt.TotalPoints = total
	attempt.EarnedPoints = earned
	if total > 0 {
		attempt.Score = float64(earned) / float64(total) * 100
	} else {
		attempt.Score = 0
	}
	attempt.Passed = attempt.Score >= float64(quiz.PassingScore)

	return tx.Save(attempt).Error
}

func (s *QuizAttemptService) ListAttempts(principal model.Principal) ([]dto.AttemptSummaryResponse, error) {
	attempts, err := s.attemptRepo.FindAllByStudent(principal.ID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AttemptSummaryResponse, 0, len(attempts))
	for i := range attempts {
		result = append(result, toAttemptSummary(&attempts[i], attempts[i].Quiz.Title))
	}
	return result, nil
}

// GetAttempt returns the graded detail of one of the caller's own attempts.
// Per-question correctness is included only when the quiz is configured to
// show correct answers.
func (s *QuizAttemptService) GetAttempt(principal model.Principal, attemptID uint) (*dto.AttemptDetailResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithDetails(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attempt not found")
		}
		return nil, err
	}
	if attempt.StudentID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.NotFound("attempt not found")
	}

	detail := dto.AttemptDetailResponse{
		AttemptSummaryResponse: toAttemptSummary(attempt, attempt.Quiz.Title),
	}
	detail.StudentAnswers = make([]dto.StudentAnswerResponse, 0, len(attempt.StudentAnswers))
	for i := range attempt.StudentAnswers {
		detail.StudentAnswers = append(detail.StudentAnswers, toStudentAnswerResponse(&attempt.StudentAnswers[i], attempt.Quiz.ShowCorrectAnswers))
	}
	return &detail, nil
}

func toStudentAnswerResponse(sa *model.StudentAnswer, showCorrect bool) dto.StudentAnswerResponse {
	resp := dto.StudentAnswerResponse{
		ID:                 sa.ID,
		QuestionID:         sa.QuestionID,
		QuestionText:       sa.Question.QuestionText,
		SelectedAnswerID:   sa.SelectedAnswerID,
		SelectedAnswerText: sa.SelectedAnswer.AnswerText,
	}
	if !showCorrect {
		return resp
	}

	isCorrect := sa.IsCorrect
	points := sa.PointsEarned
	resp.IsCorrect = &isCorrect
	resp.PointsEarned = &points
	if correct := sa.Question.CorrectAnswer(); correct != nil {
		text := correct.AnswerText
		resp.CorrectAnswerText = &text
	}
	if sa.Question.Explanation != "" {
		explanation := sa.Question.Explanation
		resp.Explanation = &explanation
	}
	return resp
}
