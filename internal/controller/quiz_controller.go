package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/internal/controller/middleware"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/service"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quizSvc    *service.QuizService
	builderSvc *service.QuizBuilderService
	attemptSvc *service.QuizAttemptService
}

func NewQuizController(
	quizSvc *service.QuizService,
	builderSvc *service.QuizBuilderService,
	attemptSvc *service.QuizAttemptService,
) *QuizController {
	return &QuizController{quizSvc: quizSvc, builderSvc: builderSvc, attemptSvc: attemptSvc}
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizSummaryResponse
// @Router /quizzes [get]
func (ctrl *QuizController) ListQuizzes(c *gin.Context) {
	resp, err := ctrl.quizSvc.ListQuizzes()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetQuiz godoc
// @Summary Get a quiz with its questions
// @Description Answer options never reveal which one is correct
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id} [get]
func (ctrl *QuizController) GetQuiz(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.quizSvc.GetQuiz(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLessonQuiz godoc
// @Summary Get the quiz attached to a lesson
// @Tags quizzes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /lessons/{id}/quiz [get]
func (ctrl *QuizController) GetLessonQuiz(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.quizSvc.GetQuizByLesson(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateQuiz godoc
// @Summary Create a lesson's quiz with all questions and answers
// @Description Instructors only; a lesson can have at most one quiz and every question exactly one correct answer
// @Tags quizzes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param quiz body dto.QuizCreateRequest true "Quiz data including questions"
// @Success 201 {object} dto.QuizDetailResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid quiz structure or lesson already has a quiz"
// @Failure 403 {object} dto.ErrorResponse
// @Router /lessons/{id}/quiz [post]
func (ctrl *QuizController) CreateQuiz(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuizCreateRequest")
		bindError(c, err)
		return
	}
	resp, err := ctrl.builderSvc.CreateQuiz(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// StartAttempt godoc
// @Summary Start a quiz attempt
// @Description Fails once the student has used up the quiz's attempt limit
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Success 201 {object} dto.AttemptSummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Maximum attempts reached"
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Router /quizzes/{id}/start_attempt [post]
func (ctrl *QuizController) StartAttempt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.StartAttempt(middleware.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SubmitQuiz godoc
// @Summary Submit answers for the active attempt
// @Description Grades the latest unfinished attempt and returns its detail
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quiz ID"
// @Param submission body dto.SubmitQuizRequest true "Selected answers"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse "No active attempt found"
// @Router /quizzes/{id}/submit [post]
func (ctrl *QuizController) SubmitQuiz(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.attemptSvc.SubmitQuiz(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAttempts godoc
// @Summary List the caller's quiz attempts
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AttemptSummaryResponse
// @Router /attempts [get]
func (ctrl *QuizController) ListAttempts(c *gin.Context) {
	resp, err := ctrl.attemptSvc.ListAttempts(middleware.Principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetAttempt godoc
// @Summary Get one of the caller's attempts with graded answers
// @Description Correctness detail is included only when the quiz shows correct answers
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{id} [get]
func (ctrl *QuizController) GetAttempt(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.attemptSvc.GetAttempt(middleware.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
