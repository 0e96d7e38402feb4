package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"reviewhub/internal/config"
	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/repository"
	"reviewhub/internal/middleware/auth"
	"reviewhub/internal/validators"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Claims carried by access tokens.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error)
	IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	mailer         Mailer
	jwtSecret      string
	accessTokenTTL time.Duration
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		mailer:         mailer,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
		now:            time.Now,
	}
}

// Signup registers the username/email pair, or re-issues a code when the
// pair already belongs to one user, and mails a fresh confirmation code.
func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := validators.ValidateUsername(req.Username); err != nil {
		return nil, fieldErr("username", err)
	}

	byName, err := s.lookup(ctx, s.userRepo.FindByUsername, req.Username)
	if err != nil {
		return nil, err
	}
	byEmail, err := s.lookup(ctx, s.userRepo.FindByEmail, req.Email)
	if err != nil {
		return nil, err
	}

	code := auth.NewConfirmationCode()
	hash, err := auth.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	switch {
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		if err := s.userRepo.SetConfirmationCode(ctx, byName.ID, hash); err != nil {
			return nil, err
		}
	case byName != nil || byEmail != nil:
		return nil, ErrUserConflict
	default:
		user := &models.User{
			Username:         req.Username,
			Email:            req.Email,
			Role:             validators.RoleUser,
			ConfirmationCode: hash,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			var uv *repository.UniqueViolationError
			if errors.As(err, &uv) {
				// lost a race with a concurrent signup
				return nil, ErrUserConflict
			}
			return nil, err
		}
	}

	if err := s.mailer.SendConfirmationCode(ctx, req.Email, req.Username, code); err != nil {
		return nil, fmt.Errorf("send confirmation code: %w", err)
	}
	return &dto.SignupResponse{Username: req.Username, Email: req.Email}, nil
}

// IssueToken exchanges a username and confirmation code for an access token.
func (s *authService) IssueToken(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFound("user", err)
	}
	if err := auth.VerifyCode(user.ConfirmationCode, req.ConfirmationCode); err != nil {
		return nil, fieldErr("confirmation_code", ErrInvalidCredentials)
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{Token: token}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// lookup runs a finder and treats a missing row as (nil, nil).
func (s *authService) lookup(
	ctx context.Context,
	find func(context.Context, string) (*models.User, error),
	value string,
) (*models.User, error) {
	user, err := find(ctx, value)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
