package service

import (
	"context"
	"log/slog"
)

// Mailer delivers confirmation codes to users.
type Mailer interface {
	SendConfirmationCode(ctx context.Context, email, username, code string) error
}

// LogMailer writes the code to the log instead of sending mail.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendConfirmationCode(ctx context.Context, email, username, code string) error {
	m.logger.InfoContext(ctx, "confirmation code issued",
		"to", email,
		"username", username,
		"confirmation_code", code,
	)
	return nil
}
