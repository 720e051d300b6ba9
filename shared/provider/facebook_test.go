package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGraphServer(t *testing.T, appID string, valid bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/debug_token", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "app-1|app-secret" {
			http.Error(w, "bad app token", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"data":{"app_id":%q,"is_valid":%t,"user_id":"fb-42"}}`, appID, valid)
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id":"fb-42","name":"Jane Q Doe","email":"jane@example.com","picture":{"data":{"url":"https://img/jane.png"}}}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFacebookVerifier_Verify(t *testing.T) {
	srv := newGraphServer(t, "app-1", true)
	v := NewFacebookVerifier("app-1", "app-secret", srv.URL, srv.Client())

	user, err := v.Verify(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if user.ProviderUserID != "fb-42" {
		t.Errorf("ProviderUserID = %q, want fb-42", user.ProviderUserID)
	}
	if user.DisplayName != "Jane Q Doe" {
		t.Errorf("DisplayName = %q", user.DisplayName)
	}
	if user.Email != "jane@example.com" {
		t.Errorf("Email = %q", user.Email)
	}
	if user.PhotoURL != "https://img/jane.png" {
		t.Errorf("PhotoURL = %q", user.PhotoURL)
	}
}

func TestFacebookVerifier_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		appID   string
		valid   bool
		token   string
		wantErr error
	}{
		{"missing token", "app-1", true, "", ErrMissingCredential},
		{"invalid token", "app-1", false, "user-token", ErrRejectedCredential},
		{"other app", "app-2", true, "user-token", ErrInvalidFacebookApp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newGraphServer(t, tt.appID, tt.valid)
			v := NewFacebookVerifier("app-1", "app-secret", srv.URL, srv.Client())

			_, err := v.Verify(context.Background(), tt.token)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
