// Package validators holds the field rules shared by request binding,
// the service layer and the admin paths: username format, release year,
// review score and user role.
package validators

import (
	"errors"
	"regexp"
	"time"
)

// Roles a user may hold.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ReservedUsername is taken by the self-service profile route.
const ReservedUsername = "me"

const (
	MinScore = 1
	MaxScore = 10
)

var (
	ErrInvalidUsername = errors.New("username must start with a letter and contain 2-21 letters, digits or . _ - characters, and must not be 'me'")
	ErrInvalidYear     = errors.New("year cannot be later than the current year")
	ErrInvalidScore    = errors.New("score must be an integer between 1 and 10")
	ErrInvalidRole     = errors.New("role must be one of: user, moderator, admin")
)

var (
	// The pattern is the rule: 2 to 21 characters. Looser length limits
	// elsewhere (the 150-char column) never admit more than this.
	usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]{1,20}$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername rejects the reserved name and anything outside the pattern.
func ValidateUsername(value string) error {
	if value == ReservedUsername {
		return ErrInvalidUsername
	}
	if !usernamePattern.MatchString(value) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateYear checks the year against the current UTC calendar year.
// The bound moves with the clock; there is no lower bound.
func ValidateYear(year int) error {
	return ValidateYearAt(year, time.Now())
}

// ValidateYearAt is ValidateYear against a fixed clock.
func ValidateYearAt(year int, now time.Time) error {
	if year > now.UTC().Year() {
		return ErrInvalidYear
	}
	return nil
}

func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrInvalidScore
	}
	return nil
}

func ValidateRole(role string) error {
	switch role {
	case RoleUser, RoleModerator, RoleAdmin:
		return nil
	}
	return ErrInvalidRole
}
