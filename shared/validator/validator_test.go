package validator

import (
	"errors"
	"testing"
)

type signUp struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
}

func TestValidator_Struct(t *testing.T) {
	v, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := v.Struct(signUp{FirstName: "Jane", Email: "a@b.com", Password: "secret1"}); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	err = v.Struct(signUp{FirstName: "J", Email: "not-an-email", Password: "123"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}

	if len(verr.Fields) != 3 {
		t.Fatalf("got %d field errors, want 3: %+v", len(verr.Fields), verr.Fields)
	}

	want := map[string]bool{"first_name": true, "email": true, "password": true}
	for _, f := range verr.Fields {
		if !want[f.Field] {
			t.Errorf("unexpected field %q", f.Field)
		}
		if f.Message == "" {
			t.Errorf("field %q has empty message", f.Field)
		}
	}
}
