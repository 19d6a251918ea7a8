package dto

import "time"

// SubmitAnswerPair is one (question, answer) selection in a submission.
type SubmitAnswerPair struct {
	QuestionID uint `json:"question_id" binding:"required"`
	AnswerID   uint `json:"answer_id" binding:"required"`
}

// SubmitQuizRequest carries the selected answers. An empty list is a valid
// submission: it closes the active attempt with a score of zero.
type SubmitQuizRequest struct {
	Answers          []SubmitAnswerPair `json:"answers" binding:"required,dive"`
	TimeTakenSeconds *int               `json:"time_taken_seconds" binding:"omitempty,min=0"`
}

type AttemptSummaryResponse struct {
	ID               uint       `json:"id"`
	QuizID           uint       `json:"quiz_id"`
	QuizTitle        string     `json:"quiz_title"`
	AttemptNumber    int        `json:"attempt_number"`
	Score            float64    `json:"score"`
	TotalPoints      int        `json:"total_points"`
	EarnedPoints     int        `json:"earned_points"`
	Passed           bool       `json:"passed"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	TimeTakenSeconds *int       `json:"time_taken_seconds,omitempty"`
}

// StudentAnswerResponse carries per-question grading detail. The correctness
// fields are omitted unless the quiz is configured to show correct answers.
type StudentAnswerResponse struct {
	ID                 uint    `json:"id"`
	QuestionID         uint    `json:"question_id"`
	QuestionText       string  `json:"question_text"`
	SelectedAnswerID   uint    `json:"selected_answer_id"`
	SelectedAnswerText string  `json:"selected_answer_text"`
	IsCorrect          *bool   `json:"is_correct,omitempty"`
	PointsEarned       *int    `json:"points_earned,omitempty"`
	CorrectAnswerText  *string `json:"correct_answer_text,omitempty"`
	Explanation        *string `json:"explanation,omitempty"`
}

type AttemptDetailResponse struct {
	AttemptSummaryResponse
	StudentAnswers []StudentAnswerResponse `json:"student_answers"`
}
