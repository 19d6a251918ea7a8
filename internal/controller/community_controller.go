package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/academe/internal/controller/middleware"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/service"
)

// CommunityController covers reviews, discussion threads and comments.
type CommunityController struct {
	reviewSvc     *service.ReviewService
	discussionSvc *service.DiscussionService
}

func NewCommunityController(reviewSvc *service.ReviewService, discussionSvc *service.DiscussionService) *CommunityController {
	return &CommunityController{reviewSvc: reviewSvc, discussionSvc: discussionSvc}
}

// ListReviews godoc
// @Summary List reviews for a course
// @Tags reviews
// @Produce json
// @Param course query int true "Course ID"
// @Success 200 {array} dto.ReviewResponse
// @Router /reviews [get]
func (ctrl *CommunityController) ListReviews(c *gin.Context) {
	id, ok := queryID(c, "course")
	if !ok {
		return
	}
	resp, err := ctrl.reviewSvc.ListByCourse(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateReview godoc
// @Summary Review a course
// @Description The reviewer must be enrolled, must not be the instructor, and can review each course once
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param review body dto.ReviewCreateRequest true "Review data"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ErrorResponse "Not enrolled or already reviewed"
// @Router /reviews [post]
func (ctrl *CommunityController) CreateReview(c *gin.Context) {
	var req dto.ReviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.reviewSvc.CreateReview(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateReview godoc
// @Summary Update a review
// @Description Author or admin only
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Param review body dto.ReviewUpdateRequest true "Fields to update"
// @Success 200 {object} dto.ReviewResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /reviews/{id} [put]
func (ctrl *CommunityController) UpdateReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.reviewSvc.UpdateReview(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags reviews
// @Security BearerAuth
// @Param id path int true "Review ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /reviews/{id} [delete]
func (ctrl *CommunityController) DeleteReview(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.reviewSvc.DeleteReview(middleware.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListDiscussions godoc
// @Summary List discussion threads for a course
// @Tags discussions
// @Produce json
// @Param course query int true "Course ID"
// @Success 200 {array} dto.DiscussionResponse
// @Router /discussions [get]
func (ctrl *CommunityController) ListDiscussions(c *gin.Context) {
	id, ok := queryID(c, "course")
	if !ok {
		return
	}
	resp, err := ctrl.discussionSvc.ListByCourse(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetDiscussion godoc
// @Summary Get a discussion with its comments
// @Tags discussions
// @Produce json
// @Param id path int true "Discussion ID"
// @Success 200 {object} dto.DiscussionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /discussions/{id} [get]
func (ctrl *CommunityController) GetDiscussion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := ctrl.discussionSvc.GetDiscussion(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateDiscussion godoc
// @Summary Start a discussion thread
// @Description The author must be enrolled in the course or be its instructor
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param discussion body dto.DiscussionCreateRequest true "Thread data"
// @Success 201 {object} dto.DiscussionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /discussions [post]
func (ctrl *CommunityController) CreateDiscussion(c *gin.Context) {
	var req dto.DiscussionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.discussionSvc.CreateDiscussion(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateDiscussion godoc
// @Summary Update a discussion
// @Description Author or admin only
// @Tags discussions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Param discussion body dto.DiscussionUpdateRequest true "Fields to update"
// @Success 200 {object} dto.DiscussionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /discussions/{id} [put]
func (ctrl *CommunityController) UpdateDiscussion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DiscussionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.discussionSvc.UpdateDiscussion(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDiscussion godoc
// @Summary Delete a discussion
// @Tags discussions
// @Security BearerAuth
// @Param id path int true "Discussion ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /discussions/{id} [delete]
func (ctrl *CommunityController) DeleteDiscussion(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.discussionSvc.DeleteDiscussion(middleware.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateComment godoc
// @Summary Comment on a discussion
// @Description A parent comment, when given, must belong to the same discussion
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment body dto.CommentCreateRequest true "Comment data"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} dto.ErrorResponse "Parent belongs to a different discussion"
// @Router /comments [post]
func (ctrl *CommunityController) CreateComment(c *gin.Context) {
	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.discussionSvc.CreateComment(middleware.Principal(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateComment godoc
// @Summary Update a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Param comment body dto.CommentUpdateRequest true "New content"
// @Success 200 {object} dto.CommentResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /comments/{id} [put]
func (ctrl *CommunityController) UpdateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	resp, err := ctrl.discussionSvc.UpdateComment(middleware.Principal(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse
// @Router /comments/{id} [delete]
func (ctrl *CommunityController) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.discussionSvc.DeleteComment(middleware.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
