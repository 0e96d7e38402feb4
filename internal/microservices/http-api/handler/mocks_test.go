package handler

import (
	"context"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

type mockTitleService struct{ mock.Mock }

func (m *mockTitleService) List(ctx context.Context, f repository.TitleFilter) ([]dto.TitleResponse, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]dto.TitleResponse)
	return list, args.Error(1)
}

func (m *mockTitleService) Get(ctx context.Context, id int64) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*dto.TitleResponse)
	return t, args.Error(1)
}

func (m *mockTitleService) Create(ctx context.Context, req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, req)
	t, _ := args.Get(0).(*dto.TitleResponse)
	return t, args.Error(1)
}

func (m *mockTitleService) Update(ctx context.Context, id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(ctx, id, req)
	t, _ := args.Get(0).(*dto.TitleResponse)
	return t, args.Error(1)
}

func (m *mockTitleService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) List(ctx context.Context, titleID int64) ([]dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID)
	list, _ := args.Get(0).([]dto.ReviewResponse)
	return list, args.Error(1)
}

func (m *mockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	r, _ := args.Get(0).(*dto.ReviewResponse)
	return r, args.Error(1)
}

func (m *mockReviewService) Create(ctx context.Context, actor *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, req)
	r, _ := args.Get(0).(*dto.ReviewResponse)
	return r, args.Error(1)
}

func (m *mockReviewService) Update(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, req)
	r, _ := args.Get(0).(*dto.ReviewResponse)
	return r, args.Error(1)
}

func (m *mockReviewService) Delete(ctx context.Context, actor *models.User, titleID, reviewID int64) error {
	return m.Called(ctx, actor, titleID, reviewID).Error(0)
}

type mockCommentService struct{ mock.Mock }

func (m *mockCommentService) List(ctx context.Context, titleID, reviewID int64) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, titleID, reviewID)
	list, _ := args.Get(0).([]dto.CommentResponse)
	return list, args.Error(1)
}

func (m *mockCommentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	args := m.Called(ctx, titleID, reviewID, commentID)
	r, _ := args.Get(0).(*dto.CommentResponse)
	return r, args.Error(1)
}

func (m *mockCommentService) Create(ctx context.Context, actor *models.User, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, req)
	r, _ := args.Get(0).(*dto.CommentResponse)
	return r, args.Error(1)
}

func (m *mockCommentService) Update(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	args := m.Called(ctx, actor, titleID, reviewID, commentID, req)
	r, _ := args.Get(0).(*dto.CommentResponse)
	return r, args.Error(1)
}

func (m *mockCommentService) Delete(ctx context.Context, actor *models.User, titleID, reviewID, commentID int64) error {
	return m.Called(ctx, actor, titleID, reviewID, commentID).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context, search string) ([]dto.UserResponse, error) {
	args := m.Called(ctx, search)
	list, _ := args.Get(0).([]dto.UserResponse)
	return list, args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, username string) (*dto.UserResponse, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*dto.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*dto.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, username, req)
	u, _ := args.Get(0).(*dto.UserResponse)
	return u, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *mockUserService) Me(actor *models.User) *dto.UserResponse {
	return dto.FromModelToUserResponse(actor)
}

func (m *mockUserService) UpdateMe(ctx context.Context, actor *models.User, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	args := m.Called(ctx, actor, req)
	u, _ := args.Get(0).(*dto.UserResponse)
	return u, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*dto.SignupResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*dto.TokenResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	c, _ := args.Get(0).(*service.Claims)
	return c, args.Error(1)
}

type pingStub struct{ err error }

func (p pingStub) PingContext(context.Context) error { return p.err }
