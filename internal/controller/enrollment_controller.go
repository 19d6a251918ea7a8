package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/internal/controller/middleware"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/service"
	"github.com/rs/zerolog/log"
)

type EnrollmentController struct {
	enrollmentSvc *service.EnrollmentService
}

func NewEnrollmentController(enrollmentSvc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentSvc: enrollmentSvc}
}

// Enroll godoc
// @Summary Enroll in a published course
// @Description Creates the enrollment and one progress row per existing lesson
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param enrollment body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.EnrollmentResponse
// @Failure 400 {object} dto.ErrorResponse "Already enrolled or course not open"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /enrollments [post]
func (ctrl *EnrollmentController) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind EnrollRequest")
		bindError(c, err)
		return
	}
	resp, err := ctrl.enrollmentSvc.Enroll(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListEnrollments godoc
// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EnrollmentResponse
// @Router /enrollments [get]
func (ctrl *EnrollmentController) ListEnrollments(c *gin.Context) {
	resp, err := ctrl.enrollmentSvc.ListEnrollments(middleware.Principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEnrollment godoc
// @Summary Get one enrollment with per-lesson progress
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.EnrollmentResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /enrollments/{id} [get]
func (ctrl *EnrollmentController) GetEnrollment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.enrollmentSvc.GetEnrollment(middleware.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CompleteLesson godoc
// @Summary Mark a lesson complete
// @Description Recomputes the enrollment progress percentage; completing the last lesson stamps the completion date once
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param lesson body dto.CompleteLessonRequest true "Lesson to mark complete"
// @Success 200 {object} dto.CompleteLessonResponse
// @Failure 404 {object} dto.ErrorResponse "Enrollment or lesson progress not found"
// @Router /enrollments/{id}/complete_lesson [post]
func (ctrl *EnrollmentController) CompleteLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CompleteLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.enrollmentSvc.CompleteLesson(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListLessonProgress godoc
// @Summary List the caller's lesson progress across all enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.LessonProgressResponse
// @Router /lesson-progress [get]
func (ctrl *EnrollmentController) ListLessonProgress(c *gin.Context) {
	resp, err := ctrl.enrollmentSvc.ListLessonProgress(middleware.Principal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
