package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
)

func toUserResponse(user *model.User) dto.UserResponse {
	var resp dto.UserResponse
	copier.Copy(&resp, user)
	resp.Role = string(user.Role)
	resp.FullName = user.FullName()
	return resp
}

func toLessonResponse(lesson *model.Lesson) dto.LessonResponse {
	var resp dto.LessonResponse
	copier.Copy(&resp, lesson)
	return resp
}

func toCategoryResponse(category *model.Category, courseCount int) dto.CategoryResponse {
	var resp dto.CategoryResponse
	copier.Copy(&resp, category)
	resp.CourseCount = courseCount
	return resp
}

// buildCourseSummary assembles the catalog card for one course, including the
// lesson/student counts and rating aggregates the list and detail pages show.
func buildCourseSummary(
	course *model.Course,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	reviewRepo repository.ReviewRepository,
) (dto.CourseSummaryResponse, error) {
	var resp dto.CourseSummaryResponse
	copier.Copy(&resp, course)
	resp.Instructor = toUserResponse(&course.Instructor)
	if course.Category != nil {
		cat := toCategoryResponse(course.Category, 0)
		resp.Category = &cat
	}

	lessons, err := courseRepo.CountLessons(course.ID)
	if err != nil {
		return resp, err
	}
	resp.TotalLessons = int(lessons)

	students, err := enrollmentRepo.CountByCourse(course.ID)
	if err != nil {
		return resp, err
	}
	resp.TotalStudents = int(students)

	stats, err := reviewRepo.StatsByCourse(course.ID)
	if err != nil {
		return resp, err
	}
	resp.AverageRating = stats.AverageRating
	resp.ReviewCount = int(stats.ReviewCount)
	return resp, nil
}

func toReviewResponse(review *model.Review) dto.ReviewResponse {
	var resp dto.ReviewResponse
	copier.Copy(&resp, review)
	resp.Student = toUserResponse(&review.Student)
	return resp
}

func toCommentResponse(comment *model.Comment) dto.CommentResponse {
	var resp dto.CommentResponse
	copier.Copy(&resp, comment)
	resp.Author = toUserResponse(&comment.Author)
	return resp
}

func toAttemptSummary(attempt *model.QuizAttempt, quizTitle string) dto.AttemptSummaryResponse {
	var resp dto.AttemptSummaryResponse
	copier.Copy(&resp, attempt)
	resp.QuizTitle = quizTitle
	return resp
}
