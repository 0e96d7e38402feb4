package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"reviewhub/internal/authz"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/validators"
)

type ReviewService interface {
	List(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error)
	Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error
}

type reviewService struct {
	reviews repository.ReviewRepository
	titles  repository.TitleRepository
	perms   authz.Authorizer
	ratings *ratings
}

func NewReviewService(
	reviews repository.ReviewRepository,
	titles repository.TitleRepository,
	perms authz.Authorizer,
	cache RatingCache,
	logger *slog.Logger,
) ReviewService {
	return &reviewService{
		reviews: reviews,
		titles:  titles,
		perms:   perms,
		ratings: newRatings(titles, cache, logger),
	}
}

func (s *reviewService) List(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error) {
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, err
	}
	list, err := s.reviews.ListByTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToReviewResponses(list), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound("review", err)
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create adds the actor's review of the title. Only one review per author
// per title is allowed; the pre-check gives the friendly error and the
// unique index settles races.
func (s *reviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	if err := s.titleExists(ctx, titleID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, fieldErr("text", ErrBlankText)
	}
	if req.Score == nil {
		return nil, fieldErr("score", validators.ErrInvalidScore)
	}
	if err := validators.ValidateScore(*req.Score); err != nil {
		return nil, fieldErr("score", err)
	}

	exists, err := s.reviews.ExistsForAuthor(ctx, actor.ID, titleID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    *req.Score,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		var uv *repository.UniqueViolationError
		if errors.As(err, &uv) && uv.Constraint == models.UniqueReviewConstraint {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	s.ratings.invalidate(ctx, titleID)

	review.Author = actor
	return dto.FromModelToReviewResponse(review), nil
}

// Update lets the author or a moderator change text and score. The
// uniqueness rule is not re-checked and pub_date is kept.
func (s *reviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return nil, notFound("review", err)
	}
	if err := canModify(s.perms, actor, review.AuthorID, authz.ObjReviews); err != nil {
		return nil, err
	}

	if req.Text != nil {
		if strings.TrimSpace(*req.Text) == "" {
			return nil, fieldErr("text", ErrBlankText)
		}
		review.Text = *req.Text
	}
	if req.Score != nil {
		if err := validators.ValidateScore(*req.Score); err != nil {
			return nil, fieldErr("score", err)
		}
		review.Score = *req.Score
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	s.ratings.invalidate(ctx, titleID)
	return dto.FromModelToReviewResponse(review), nil
}

// Delete removes the review and its comments.
func (s *reviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	review, err := s.reviews.GetByID(ctx, titleID, reviewID)
	if err != nil {
		return notFound("review", err)
	}
	if err := canModify(s.perms, actor, review.AuthorID, authz.ObjReviews); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, review.ID); err != nil {
		return notFound("review", err)
	}
	s.ratings.invalidate(ctx, titleID)
	return nil
}

func (s *reviewService) titleExists(ctx context.Context, titleID int64) error {
	if _, err := s.titles.GetByID(ctx, titleID); err != nil {
		return notFound("title", err)
	}
	return nil
}
