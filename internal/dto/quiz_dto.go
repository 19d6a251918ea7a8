package dto

import "time"

// AnswerCreateRequest is used within QuestionCreateRequest for quiz authoring.
type AnswerCreateRequest struct {
	AnswerText string `json:"answer_text" binding:"required"`
	IsCorrect  bool   `json:"is_correct"`
	Order      int    `json:"order" binding:"omitempty,min=0"`
}

type QuestionCreateRequest struct {
	QuestionText string                `json:"question_text" binding:"required"`
	QuestionType string                `json:"question_type" binding:"required,oneof=multiple_choice true_false"`
	Points       int                   `json:"points" binding:"required,gt=0"`
	Order        int                   `json:"order" binding:"omitempty,min=0"`
	Explanation  string                `json:"explanation"`
	Answers      []AnswerCreateRequest `json:"answers" binding:"required,min=2,dive"`
}

// QuizCreateRequest creates the quiz for a lesson together with all its
// questions and answer options.
type QuizCreateRequest struct {
	Title              string                  `json:"title" binding:"required"`
	Description        string                  `json:"description"`
	PassingScore       int                     `json:"passing_score" binding:"omitempty,min=0,max=100"`
	TimeLimitMinutes   *int                    `json:"time_limit_minutes" binding:"omitempty,gt=0"`
	MaxAttempts        int                     `json:"max_attempts" binding:"omitempty,gt=0"`
	ShowCorrectAnswers *bool                   `json:"show_correct_answers"`
	Questions          []QuestionCreateRequest `json:"questions" binding:"required,min=1,dive"`
}

// AnswerOptionResponse never carries the is_correct flag; it is what a student
// sees while taking the quiz.
type AnswerOptionResponse struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
	Order      int    `json:"order"`
}

type QuestionResponse struct {
	ID           uint                   `json:"id"`
	QuestionText string                 `json:"question_text"`
	QuestionType string                 `json:"question_type"`
	Points       int                    `json:"points"`
	Order        int                    `json:"order"`
	Answers      []AnswerOptionResponse `json:"answers"`
}

type QuizSummaryResponse struct {
	ID               uint      `json:"id"`
	LessonID         uint      `json:"lesson_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	PassingScore     int       `json:"passing_score"`
	TimeLimitMinutes *int      `json:"time_limit_minutes,omitempty"`
	MaxAttempts      int       `json:"max_attempts"`
	TotalPoints      int       `json:"total_points"`
	TotalQuestions   int       `json:"total_questions"`
	CreatedAt        time.Time `json:"created_at"`
}

type QuizDetailResponse struct {
	QuizSummaryResponse
	ShowCorrectAnswers bool               `json:"show_correct_answers"`
	Questions          []QuestionResponse `json:"questions"`
}
