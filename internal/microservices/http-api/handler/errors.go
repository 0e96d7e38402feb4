package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"reviewhub/internal/microservices/http-api/dto"
	"reviewhub/internal/microservices/http-api/middleware"
	"reviewhub/internal/microservices/http-api/models"
	"reviewhub/internal/microservices/http-api/service"
	"reviewhub/internal/validators"

	"github.com/gin-gonic/gin"
)

// requestTimeout bounds every store call made for one request.
const requestTimeout = 5 * time.Second

var badRequestErrors = []error{
	validators.ErrInvalidUsername,
	validators.ErrInvalidYear,
	validators.ErrInvalidScore,
	validators.ErrInvalidRole,
	service.ErrDuplicateReview,
	service.ErrUnknownReference,
	service.ErrBlankText,
	service.ErrInvalidCredentials,
}

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUniqueViolation), errors.Is(err, service.ErrUserConflict):
		return http.StatusConflict
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Unexpected errors are
// logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		c.JSON(status, dto.ErrorResponse{Error: "internal server error"})
		return
	}

	body := dto.ErrorResponse{Error: err.Error()}
	var fe *service.FieldError
	if errors.As(err, &fe) {
		body.Error = fe.Err.Error()
		body.Fields = map[string]string{fe.Field: fe.Err.Error()}
	}
	c.JSON(status, body)
}

// bindJSON binds the body and answers 400 itself on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if fields := validators.FieldErrors(err); fields != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "validation failed", Fields: fields})
		} else {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed request body"})
		}
		return false
	}
	return true
}

// pathID parses a numeric path parameter; a non-number is a missing entity.
func pathID(c *gin.Context, param, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, &service.NotFoundError{Entity: entity})
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user or answers 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication credentials were not provided"})
		return nil, false
	}
	return user, true
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}
