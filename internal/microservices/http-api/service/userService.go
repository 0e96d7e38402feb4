package service

import (
	"context"
	"log/slog"
	"strings"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/validators"
)

type UserService interface {
	List(ctx context.Context, search string) ([]dto.UserResponse, error)
	Get(ctx context.Context, username string) (*dto.UserResponse, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error

	// self-service
	Me(actor *models.User) *dto.UserResponse
	UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	users   repository.UserRepository
	reviews repository.ReviewRepository
	ratings *ratings
}

func NewUserService(
	users repository.UserRepository,
	reviews repository.ReviewRepository,
	titles repository.TitleRepository,
	cache RatingCache,
	logger *slog.Logger,
) UserService {
	return &userService{
		users:   users,
		reviews: reviews,
		ratings: newRatings(titles, cache, logger),
	}
}

func (s *userService) List(ctx context.Context, search string) ([]dto.UserResponse, error) {
	list, err := s.users.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return dto.FromModelsToUserResponses(list), nil
}

func (s *userService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound("user", err)
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := validators.ValidateUsername(req.Username); err != nil {
		return nil, fieldErr("username", err)
	}
	role := req.Role
	if role == "" {
		role = validators.RoleUser
	}
	if err := validators.ValidateRole(role); err != nil {
		return nil, fieldErr("role", err)
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, uniqueField(err, "username", "email")
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound("user", err)
	}
	return s.apply(ctx, user, req)
}

// Delete removes the user with their reviews and comments. Ratings of the
// titles they reviewed change, so those cache entries are dropped.
func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return notFound("user", err)
	}
	titleIDs, err := s.reviews.TitleIDsByAuthor(ctx, user.ID)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return notFound("user", err)
	}
	s.ratings.invalidate(ctx, titleIDs...)
	return nil
}

func (s *userService) Me(actor *models.User) *dto.UserResponse {
	return dto.FromModelToUserResponse(actor)
}

// UpdateMe edits the caller's own profile. The role is never taken from the
// request; the stored role is returned.
func (s *userService) UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	user := *actor
	return s.apply(ctx, &user, req.AsUserUpdate())
}

func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if req.Username != nil {
		if err := validators.ValidateUsername(*req.Username); err != nil {
			return nil, fieldErr("username", err)
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Role != nil {
		if err := validators.ValidateRole(*req.Role); err != nil {
			return nil, fieldErr("role", err)
		}
		user.Role = *req.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, uniqueField(err, "username", "email")
	}
	return dto.FromModelToUserResponse(user), nil
}
