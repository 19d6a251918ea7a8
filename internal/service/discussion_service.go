package service

import (
	"errors"

	"github.com/lshigami/academe/internal/apperr"
	"github.com/lshigami/academe/internal/dto"
	"github.com/lshigami/academe/internal/model"
	"github.com/lshigami/academe/internal/repository"
	"gorm.io/gorm"
)

// DiscussionService covers course discussion threads and their comments.
type DiscussionService struct {
	discussionRepo repository.DiscussionRepository
	commentRepo    repository.CommentRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewDiscussionService(
	discussionRepo repository.DiscussionRepository,
	commentRepo repository.CommentRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) *DiscussionService {
	return &DiscussionService{
		discussionRepo: discussionRepo,
		commentRepo:    commentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *DiscussionService) ListByCourse(courseID uint) ([]dto.DiscussionResponse, error) {
	rows, err := s.discussionRepo.FindAllByCourse(courseID)
	if err != nil {
		return nil, err
	}
	result := make([]dto.DiscussionResponse, 0, len(rows))
	for i := range rows {
		discussion, err := s.discussionRepo.FindByID(rows[i].Discussion.ID)
		if err != nil {
			return nil, err
		}
		resp := toDiscussionResponse(discussion, false)
		resp.CommentCount = rows[i].CommentCount
		result = append(result, resp)
	}
	return result, nil
}

func (s *DiscussionService) GetDiscussion(id uint) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.FindByIDWithComments(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("discussion not found")
		}
		return nil, err
	}
	resp := toDiscussionResponse(discussion, true)
	return &resp, nil
}

// CreateDiscussion requires the author to be enrolled in the course or to be
// its instructor.
func (s *DiscussionService) CreateDiscussion(principal model.Principal, req dto.DiscussionCreateRequest) (*dto.DiscussionResponse, error) {
	course, err := s.courseRepo.FindByID(req.Course)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}
	if err := s.requireParticipant(principal, course); err != nil {
		return nil, err
	}

	discussion := model.Discussion{
		CourseID: course.ID,
		AuthorID: principal.ID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := s.discussionRepo.Create(&discussion); err != nil {
		return nil, err
	}
	return s.GetDiscussion(discussion.ID)
}

func (s *DiscussionService) UpdateDiscussion(principal model.Principal, id uint, req dto.DiscussionUpdateRequest) (*dto.DiscussionResponse, error) {
	discussion, err := s.discussionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("discussion not found")
		}
		return nil, err
	}
	if discussion.AuthorID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.Forbidden("you cannot modify this discussion")
	}

	if req.Title != nil {
		discussion.Title = *req.Title
	}
	if req.Content != nil {
		discussion.Content = *req.Content
	}
	if err := s.discussionRepo.Update(discussion); err != nil {
		return nil, err
	}
	return s.GetDiscussion(discussion.ID)
}

func (s *DiscussionService) DeleteDiscussion(principal model.Principal, id uint) error {
	discussion, err := s.discussionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("discussion not found")
		}
		return err
	}
	if discussion.AuthorID != principal.ID && !principal.IsAdmin() {
		return apperr.Forbidden("you cannot delete this discussion")
	}
	return s.discussionRepo.Delete(id)
}

// CreateComment posts a comment, optionally as a reply to a parent comment of
// the same discussion. The instructor-reply flag is derived by comparing the
// author to the course instructor.
func (s *DiscussionService) CreateComment(principal model.Principal, req dto.CommentCreateRequest) (*dto.CommentResponse, error) {
	discussion, err := s.discussionRepo.FindByID(req.Discussion)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("discussion not found")
		}
		return nil, err
	}
	course, err := s.courseRepo.FindByID(discussion.CourseID)
	if err != nil {
		return nil, err
	}
	if err := s.requireParticipant(principal, course); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.NotFound("parent comment not found")
			}
			return nil, err
		}
		if parent.DiscussionID != discussion.ID {
			return nil, apperr.Validation("parent comment belongs to a different discussion")
		}
	}

	comment := model.Comment{
		DiscussionID:      discussion.ID,
		AuthorID:          principal.ID,
		ParentID:          req.ParentID,
		Content:           req.Content,
		IsInstructorReply: course.InstructorID == principal.ID,
	}
	if err := s.commentRepo.Create(&comment); err != nil {
		return nil, err
	}
	return s.getComment(comment.ID)
}

func (s *DiscussionService) UpdateComment(principal model.Principal, id uint, req dto.CommentUpdateRequest) (*dto.CommentResponse, error) {
	comment, err := s.ownComment(principal, id)
	if err != nil {
		return nil, err
	}
	comment.Content = req.Content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return s.getComment(comment.ID)
}

func (s *DiscussionService) DeleteComment(principal model.Principal, id uint) error {
	if _, err := s.ownComment(principal, id); err != nil {
		return err
	}
	return s.commentRepo.Delete(id)
}

func (s *DiscussionService) getComment(id uint) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := toCommentResponse(comment)
	return &resp, nil
}

func (s *DiscussionService) ownComment(principal model.Principal, id uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	if comment.AuthorID != principal.ID && !principal.IsAdmin() {
		return nil, apperr.Forbidden("you cannot modify this comment")
	}
	return comment, nil
}

// requireParticipant admits the course instructor, admins, and enrolled
// students.
func (s *DiscussionService) requireParticipant(principal model.Principal, course *model.Course) error {
	if course.InstructorID == principal.ID || principal.IsAdmin() {
		return nil
	}
	enrolled, err := s.enrollmentRepo.Exists(principal.ID, course.ID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperr.Forbidden("you must be enrolled to participate in discussions")
	}
	return nil
}

func toDiscussionResponse(discussion *model.Discussion, withComments bool) dto.DiscussionResponse {
	resp := dto.DiscussionResponse{
		ID:        discussion.ID,
		CourseID:  discussion.CourseID,
		Author:    toUserResponse(&discussion.Author),
		Title:     discussion.Title,
		Content:   discussion.Content,
		CreatedAt: discussion.CreatedAt,
		UpdatedAt: discussion.UpdatedAt,
	}
	if withComments {
		resp.CommentCount = len(discussion.Comments)
		for i := range discussion.Comments {
			resp.Comments = append(resp.Comments, toCommentResponse(&discussion.Comments[i]))
		}
	}
	return resp
}
