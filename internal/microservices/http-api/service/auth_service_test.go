package service

import (
	"context"
	"testing"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestAuthService(repo *MockUserRepository, mailer Mailer) AuthService {
	cfg := &config.Config{JWTSecret: testSecret, AccessTokenTTL: time.Hour}
	return NewAuthService(repo, mailer, cfg)
}

func TestSignup_NewUser(t *testing.T) {
	repo := new(MockUserRepository)
	mailer := &recordingMailer{}
	svc := newTestAuthService(repo, mailer)

	repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(nil, gorm.ErrRecordNotFound)

	var created *models.User
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*models.User) }).
		Return(nil)

	resp, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "reader", Email: "reader@example.com"})

	require.NoError(t, err)
	assert.Equal(t, &dto.SignupResponse{Username: "reader", Email: "reader@example.com"}, resp)
	require.NotNil(t, created)
	assert.Equal(t, "user", created.Role)
	assert.Equal(t, 1, mailer.sent)
	assert.NoError(t, auth.VerifyCode(created.ConfirmationCode, mailer.code))
	repo.AssertExpectations(t)
}

func TestSignup_ReissuesCodeForSameUser(t *testing.T) {
	repo := new(MockUserRepository)
	mailer := &recordingMailer{}
	svc := newTestAuthService(repo, mailer)
	existing := &models.User{ID: 4, Username: "reader", Email: "reader@example.com"}

	repo.On("FindByUsername", mock.Anything, "reader").Return(existing, nil)
	repo.On("FindByEmail", mock.Anything, "reader@example.com").Return(existing, nil)
	repo.On("SetConfirmationCode", mock.Anything, int64(4), mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "reader", Email: "reader@example.com"})

	require.NoError(t, err)
	assert.Equal(t, 1, mailer.sent)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestSignup_Conflict(t *testing.T) {
	cases := map[string]struct {
		byName, byEmail *models.User
	}{
		"username taken": {byName: &models.User{ID: 1}},
		"email taken":    {byEmail: &models.User{ID: 2}},
		"different users": {
			byName:  &models.User{ID: 1},
			byEmail: &models.User{ID: 2},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockUserRepository)
			mailer := &recordingMailer{}
			svc := newTestAuthService(repo, mailer)

			if tc.byName != nil {
				repo.On("FindByUsername", mock.Anything, "reader").Return(tc.byName, nil)
			} else {
				repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound)
			}
			if tc.byEmail != nil {
				repo.On("FindByEmail", mock.Anything, "r@example.com").Return(tc.byEmail, nil)
			} else {
				repo.On("FindByEmail", mock.Anything, "r@example.com").Return(nil, gorm.ErrRecordNotFound)
			}

			_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "reader", Email: "r@example.com"})
			assert.ErrorIs(t, err, ErrUserConflict)
			assert.Zero(t, mailer.sent)
		})
	}
}

func TestSignup_CreateRaceIsConflict(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, &recordingMailer{})

	repo.On("FindByUsername", mock.Anything, "reader").Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByEmail", mock.Anything, "r@example.com").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(&repository.UniqueViolationError{Constraint: "idx_users_username"})

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "reader", Email: "r@example.com"})
	assert.ErrorIs(t, err, ErrUserConflict)
}

func TestSignup_ReservedUsername(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, &recordingMailer{})

	_, err := svc.Signup(context.Background(), dto.SignupRequest{Username: "me", Email: "me@example.com"})

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "username", fe.Field)
	repo.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestIssueToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, &recordingMailer{})

	hash, err := auth.HashCode("the-code")
	require.NoError(t, err)
	user := &models.User{ID: 9, Username: "reader", Role: "moderator", ConfirmationCode: hash}
	repo.On("FindByUsername", mock.Anything, "reader").Return(user, nil)

	resp, err := svc.IssueToken(context.Background(), dto.TokenRequest{Username: "reader", ConfirmationCode: "the-code"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.Equal(t, "9", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueToken_BadCode(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, &recordingMailer{})

	hash, err := auth.HashCode("the-code")
	require.NoError(t, err)
	repo.On("FindByUsername", mock.Anything, "reader").Return(&models.User{ID: 1, ConfirmationCode: hash}, nil)

	_, err = svc.IssueToken(context.Background(), dto.TokenRequest{Username: "reader", ConfirmationCode: "guess"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueToken_UnknownUser(t *testing.T) {
	repo := new(MockUserRepository)
	svc := newTestAuthService(repo, &recordingMailer{})
	repo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.IssueToken(context.Background(), dto.TokenRequest{Username: "ghost", ConfirmationCode: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidateToken_RejectsForeignSecretAndExpired(t *testing.T) {
	other := NewAuthService(new(MockUserRepository), &recordingMailer{},
		&config.Config{JWTSecret: "another-secret-another-secret-xx", AccessTokenTTL: time.Hour}).(*authService)
	foreign, err := other.generateAccessToken(&models.User{ID: 1})
	require.NoError(t, err)

	svc := newTestAuthService(new(MockUserRepository), &recordingMailer{}).(*authService)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := svc.generateAccessToken(&models.User{ID: 1})
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
