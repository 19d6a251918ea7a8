package dto

import "time"

type ReviewCreateRequest struct {
	Course     uint   `json:"course" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	ReviewText string `json:"review_text"`
}

type ReviewUpdateRequest struct {
	Rating     *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	ReviewText *string `json:"review_text"`
}

type ReviewResponse struct {
	ID           uint         `json:"id"`
	CourseID     uint         `json:"course_id"`
	Student      UserResponse `json:"student"`
	Rating       int          `json:"rating"`
	ReviewText   string       `json:"review_text,omitempty"`
	HelpfulCount int          `json:"helpful_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type DiscussionCreateRequest struct {
	Course  uint   `json:"course" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type DiscussionUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type DiscussionResponse struct {
	ID           uint              `json:"id"`
	CourseID     uint              `json:"course_id"`
	Author       UserResponse      `json:"author"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	CommentCount int               `json:"comment_count"`
	Comments     []CommentResponse `json:"comments,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type CommentCreateRequest struct {
	Discussion uint   `json:"discussion" binding:"required"`
	ParentID   *uint  `json:"parent_id"`
	Content    string `json:"content" binding:"required"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID                uint         `json:"id"`
	DiscussionID      uint         `json:"discussion_id"`
	Author            UserResponse `json:"author"`
	ParentID          *uint        `json:"parent_id,omitempty"`
	Content           string       `json:"content"`
	IsInstructorReply bool         `json:"is_instructor_reply"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
