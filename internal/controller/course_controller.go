package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/internal/controller/middleware"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/service"
	"github.com/rs/zerolog/log"
)

type CourseController struct {
	courseSvc *service.CourseService
	lessonSvc *service.LessonService
}

func NewCourseController(courseSvc *service.CourseService, lessonSvc *service.LessonService) *CourseController {
	return &CourseController{courseSvc: courseSvc, lessonSvc: lessonSvc}
}

// ListCourses godoc
// @Summary List published courses
// @Description Retrieve the catalog, optionally filtered by a search term matched against title, description and instructor
// @Tags courses
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {array} dto.CourseSummaryResponse
// @Router /courses [get]
func (ctrl *CourseController) ListCourses(c *gin.Context) {
	resp, err := ctrl.courseSvc.ListCourses(c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCourse godoc
// @Summary Get a course with its lessons
// @Description Draft courses are visible only to their instructor and admins
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (ctrl *CourseController) GetCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.courseSvc.GetCourse(middleware.OptionalPrincipal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCourse godoc
// @Summary Create a course
// @Description Instructors only; new courses default to draft status
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course body dto.CourseCreateRequest true "Course data"
// @Success 201 {object} dto.CourseSummaryResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not an instructor"
// @Router /courses [post]
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req dto.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind CourseCreateRequest")
		bindError(c, err)
		return
	}
	resp, err := ctrl.courseSvc.CreateCourse(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Only the owning instructor or an admin may update
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param course body dto.CourseUpdateRequest true "Fields to update"
// @Success 200 {object} dto.CourseSummaryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.courseSvc.UpdateCourse(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [delete]
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.courseSvc.DeleteCourse(middleware.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Analytics godoc
// @Summary Get instructor analytics for a course
// @Description Enrollment, completion, progress and rating aggregates for the owning instructor
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseAnalyticsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/{id}/analytics [get]
func (ctrl *CourseController) Analytics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.courseSvc.Analytics(middleware.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListCourseLessons godoc
// @Summary List the ordered lessons of a course
// @Tags lessons
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {array} dto.LessonResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/lessons [get]
func (ctrl *CourseController) ListCourseLessons(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.lessonSvc.ListByCourse(middleware.OptionalPrincipal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.LessonResponse
// @Failure 404 {object} dto.ErrorResponse "Lesson not found"
// @Router /lessons/{id} [get]
func (ctrl *CourseController) GetLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.lessonSvc.GetLesson(middleware.OptionalPrincipal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateLesson godoc
// @Summary Add a lesson to a course
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param lesson body dto.LessonCreateRequest true "Lesson data"
// @Success 201 {object} dto.LessonResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses/{id}/lessons [post]
func (ctrl *CourseController) CreateLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LessonCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.lessonSvc.CreateLesson(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param lesson body dto.LessonUpdateRequest true "Fields to update"
// @Success 200 {object} dto.LessonResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /lessons/{id} [put]
func (ctrl *CourseController) UpdateLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.LessonUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.lessonSvc.UpdateLesson(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Tags lessons
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /lessons/{id} [delete]
func (ctrl *CourseController) DeleteLesson(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.lessonSvc.DeleteLesson(middleware.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories godoc
// @Summary List categories with course counts
// @Tags categories
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /categories [get]
func (ctrl *CourseController) ListCategories(c *gin.Context) {
	resp, err := ctrl.courseSvc.ListCategories()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategory godoc
// @Summary Get a category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{slug} [get]
func (ctrl *CourseController) GetCategory(c *gin.Context) {
	resp, err := ctrl.courseSvc.GetCategory(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory godoc
// @Summary Create a category
// @Description Admins only
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CategoryCreateRequest true "Category data"
// @Success 201 {object} dto.CategoryResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /categories [post]
func (ctrl *CourseController) CreateCategory(c *gin.Context) {
	var req dto.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.courseSvc.CreateCategory(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
