package service

import (
	"context"

	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetConfirmationCode(ctx context.Context, userID int64, hash string) error {
	return m.Called(ctx, userID, hash).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]models.User, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context, search string) ([]models.Category, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) List(ctx context.Context, search string) ([]models.Genre, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	return m.Called(ctx, g).Error(0)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

// MockTitleRepository mocks the TitleRepository interface
type MockTitleRepository struct {
	mock.Mock
}

func (m *MockTitleRepository) List(ctx context.Context, f repository.TitleFilter) ([]models.Title, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]models.Title), args.Error(1)
}

func (m *MockTitleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Title), args.Error(1)
}

func (m *MockTitleRepository) Create(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return m.Called(ctx, t, genres).Error(0)
}

func (m *MockTitleRepository) Update(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return m.Called(ctx, t, genres).Error(0)
}

func (m *MockTitleRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTitleRepository) Ratings(ctx context.Context, ids []int64) (map[int64]int, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

// MockReviewRepository mocks the ReviewRepository interface
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTitle(ctx context.Context, titleID int64) ([]models.Review, error) {
	args := m.Called(ctx, titleID)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) ExistsForAuthor(ctx context.Context, authorID, titleID int64) (bool, error) {
	args := m.Called(ctx, authorID, titleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) TitleIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]int64), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, reviewID, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, reviewID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByReview(ctx context.Context, reviewID int64) ([]models.Comment, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

// recordingMailer keeps the last code it was asked to send.
type recordingMailer struct {
	email, username, code string
	sent                  int
}

func (r *recordingMailer) SendConfirmationCode(_ context.Context, email, username, code string) error {
	r.email, r.username, r.code = email, username, code
	r.sent++
	return nil
}

// memoryCache is an in-process RatingCache with the same versioned
// writes as the redis one.
type memoryCache struct {
	entries     map[int64]*int
	versions    map[int64]int64
	invalidated []int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[int64]*int{}, versions: map[int64]int64{}}
}

func (c *memoryCache) Get(_ context.Context, id int64) (*int, bool, error) {
	v, ok := c.entries[id]
	return v, ok, nil
}

func (c *memoryCache) Version(_ context.Context, id int64) (int64, error) {
	return c.versions[id], nil
}

func (c *memoryCache) Set(_ context.Context, id int64, rating *int, version int64) error {
	if c.versions[id] != version {
		return nil
	}
	c.entries[id] = rating
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, ids ...int64) error {
	for _, id := range ids {
		c.versions[id]++
		delete(c.entries, id)
	}
	c.invalidated = append(c.invalidated, ids...)
	return nil
}

// roleAuthorizer lets the listed roles moderate everything.
type roleAuthorizer map[string]bool

func (a roleAuthorizer) Can(role, _, _ string) bool { return a[role] }

func intPtr(i int) *int          { return &i }
func stringPtr(s string) *string { return &s }
