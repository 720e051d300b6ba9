package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/shared/mailer"
)

type ContactUsecase interface {
	SendMessage(ctx context.Context, params ContactParams) error
}

type ContactParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// MailSender delivers one email. *mailer.Mailer satisfies it.
type MailSender interface {
	Send(email mailer.Email) error
}

type contactUsecase struct {
	sender MailSender
	inbox  string
	logger *zerolog.Logger
}

// NewContactUsecase returns a usecase that fails every message when sender is nil.
func NewContactUsecase(sender MailSender, inbox string, logger *zerolog.Logger) ContactUsecase {
	return &contactUsecase{sender: sender, inbox: inbox, logger: logger}
}

func (u *contactUsecase) SendMessage(ctx context.Context, params ContactParams) error {
	if u.sender == nil || u.inbox == "" {
		return fmt.Errorf("%w: mail delivery is not configured", ErrContactFailed)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	email := mailer.Email{
		To:      []string{u.inbox},
		ReplyTo: params.Email,
		Subject: "[Contact] " + params.Subject,
		Body: fmt.Sprintf(
			"Name: %s\nEmail: %s\n\n%s\n",
			params.Name,
			params.Email,
			params.Message,
		),
	}

	if err := u.sender.Send(email); err != nil {
		u.logger.Error().Err(err).Str("reply_to", params.Email).Msg("failed to send contact message")

		return fmt.Errorf("%w: %w", ErrContactFailed, err)
	}

	return nil
}
