package service

import (
	"context"
	"strings"

	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
)

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64) ([]dto.CommentResponse, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error
}

type commentService struct {
	comments repository.CommentRepository
	reviews  repository.ReviewRepository
	perms    authz.Authorizer
}

func NewCommentService(
	comments repository.CommentRepository,
	reviews repository.ReviewRepository,
	perms authz.Authorizer,
) CommentService {
	return &commentService{
		comments: comments,
		reviews:  reviews,
		perms:    perms,
	}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64) ([]dto.CommentResponse, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	list, err := s.comments.ListByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToCommentResponses(list), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fieldErr("text", ErrBlankText)
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = actor
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := canModify(s.perms, actor, comment.AuthorID, authz.ObjComments); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fieldErr("text", ErrBlankText)
	}

	comment.Text = req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	comment, err := s.find(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := canModify(s.perms, actor, comment.AuthorID, authz.ObjComments); err != nil {
		return err
	}
	return notFound("comment", s.comments.Delete(ctx, comment.ID))
}

// find loads a comment through its review so that mismatched ids 404.
func (s *commentService) find(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.reviewExists(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetByID(ctx, reviewID, commentID)
	if err != nil {
		return nil, notFound("comment", err)
	}
	return comment, nil
}

func (s *commentService) reviewExists(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviews.GetByID(ctx, titleID, reviewID); err != nil {
		return notFound("review", err)
	}
	return nil
}
