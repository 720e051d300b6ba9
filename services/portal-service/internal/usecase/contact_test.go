package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vasapolrittideah/careers-portal/shared/logger"
)

var contactMessage = ContactParams{
	Name:    "Jane Doe",
	Email:   "a@b.com",
	Subject: "Hiring",
	Message: "Do you sponsor internships?",
}

func TestContact_SendsToInbox(t *testing.T) {
	sender := &fakeSender{}
	u := NewContactUsecase(sender, "hello@example.com", logger.Nop())

	if err := u.SendMessage(context.Background(), contactMessage); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sender.sent))
	}
	email := sender.sent[0]
	if email.To[0] != "hello@example.com" || email.ReplyTo != "a@b.com" {
		t.Errorf("email routing = %+v", email)
	}
	if !strings.Contains(email.Subject, "Hiring") || !strings.Contains(email.Body, "Do you sponsor internships?") {
		t.Errorf("email content = %+v", email)
	}
}

func TestContact_Failures(t *testing.T) {
	tests := []struct {
		name   string
		sender MailSender
	}{
		{"smtp error", &fakeSender{err: errors.New("dial tcp: refused")}},
		{"not configured", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewContactUsecase(tt.sender, "hello@example.com", logger.Nop())

			if err := u.SendMessage(context.Background(), contactMessage); !errors.Is(err, ErrContactFailed) {
				t.Errorf("err = %v, want ErrContactFailed", err)
			}
		})
	}
}
