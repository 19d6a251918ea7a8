package dto

import "time"

type CourseCreateRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	CategoryID   *uint  `json:"category_id"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Status       string `json:"status" binding:"omitempty,oneof=draft published"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type CourseUpdateRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	CategoryID   *uint   `json:"category_id"`
	Difficulty   *string `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Status       *string `json:"status" binding:"omitempty,oneof=draft published"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

type CourseSummaryResponse struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Instructor     UserResponse      `json:"instructor"`
	Category       *CategoryResponse `json:"category,omitempty"`
	Difficulty     string            `json:"difficulty"`
	Status         string            `json:"status"`
	ThumbnailURL   string            `json:"thumbnail_url,omitempty"`
	TotalLessons   int               `json:"total_lessons"`
	TotalStudents  int               `json:"total_students"`
	AverageRating  float64           `json:"average_rating"`
	ReviewCount    int               `json:"review_count"`
	CreatedAt      time.Time         `json:"created_at"`
}

type CourseDetailResponse struct {
	CourseSummaryResponse
	Lessons []LessonResponse `json:"lessons"`
}

type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CourseCount int    `json:"course_count"`
}

type LessonCreateRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	LessonType    string `json:"lesson_type" binding:"omitempty,oneof=video text"`
	VideoURL      string `json:"video_url"`
	TextContent   string `json:"text_content"`
	Order         int    `json:"order" binding:"omitempty,min=0"`
	Duration      int    `json:"duration" binding:"omitempty,min=0"`
	IsFreePreview bool   `json:"is_free_preview"`
}

type LessonUpdateRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	LessonType    *string `json:"lesson_type" binding:"omitempty,oneof=video text"`
	VideoURL      *string `json:"video_url"`
	TextContent   *string `json:"text_content"`
	Order         *int    `json:"order" binding:"omitempty,min=0"`
	Duration      *int    `json:"duration" binding:"omitempty,min=0"`
	IsFreePreview *bool   `json:"is_free_preview"`
}

type LessonResponse struct {
	ID            uint      `json:"id"`
	CourseID      uint      `json:"course_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	LessonType    string    `json:"lesson_type"`
	VideoURL      string    `json:"video_url,omitempty"`
	TextContent   string    `json:"text_content,omitempty"`
	Order         int       `json:"order"`
	Duration      int       `json:"duration"`
	IsFreePreview bool      `json:"is_free_preview"`
	CreatedAt     time.Time `json:"created_at"`
}

// CourseAnalyticsResponse is the instructor-only dashboard payload.
type CourseAnalyticsResponse struct {
	TotalStudents        int            `json:"total_students"`
	CompletedStudents    int            `json:"completed_students"`
	CompletionRate       float64        `json:"completion_rate"`
	AverageProgress      float64        `json:"average_progress"`
	AverageRating        float64        `json:"average_rating"`
	TotalReviews         int            `json:"total_reviews"`
	RatingDistribution   map[string]int `json:"rating_distribution"`
	ProgressDistribution map[string]int `json:"progress_distribution"`
}
