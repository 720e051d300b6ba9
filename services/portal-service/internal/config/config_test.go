package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TOKEN_ACCESS_SECRET", "access")
	t.Setenv("TOKEN_REFRESH_SECRET", "refresh")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if cfg.HTTP.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
	if cfg.Token.AccessTokenExpiresIn != 15*time.Minute {
		t.Errorf("AccessTokenExpiresIn = %v", cfg.Token.AccessTokenExpiresIn)
	}
	if cfg.Payment.QRImageURL != "/upi-qr-code.png" {
		t.Errorf("QRImageURL = %q", cfg.Payment.QRImageURL)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want 587", cfg.SMTP.Port)
	}
	if cfg.ContactEnabled() {
		t.Error("contact should be disabled without SMTP settings")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TOKEN_ACCESS_SECRET", "access")
	t.Setenv("TOKEN_REFRESH_SECRET", "refresh")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("REDIS_SUBMIT_LOCK_TTL", "5s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "u")
	t.Setenv("SMTP_PASSWORD", "p")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("CONTACT_INBOX", "hello@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != 9000 {
		t.Errorf("HTTP.Port = %d", cfg.HTTP.Port)
	}
	if cfg.Redis.SubmitLockTTL != 5*time.Second {
		t.Errorf("SubmitLockTTL = %v", cfg.Redis.SubmitLockTTL)
	}
	if !cfg.ContactEnabled() {
		t.Error("contact should be enabled")
	}
}

func TestLoad_RequiresSecrets(t *testing.T) {
	tests := []struct {
		name    string
		access  string
		refresh string
		want    string
	}{
		{"missing access", "", "refresh", "TOKEN_ACCESS_SECRET"},
		{"missing refresh", "access", "", "TOKEN_REFRESH_SECRET"},
		{"same secret", "same", "same", "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TOKEN_ACCESS_SECRET", tt.access)
			t.Setenv("TOKEN_REFRESH_SECRET", tt.refresh)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
