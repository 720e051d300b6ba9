package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// APIError represents an error in the API response. Redirect tells the
// client where to send the user, e.g. to sign in.
type APIError struct {
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Details  []validator.FieldError `json:"details,omitempty"`
	Redirect string                 `json:"redirect,omitempty"`
}

var (
	errInvalidBody  = errors.New("invalid request body")
	errUnknownRoute = errors.New("unknown application type")
	errTooManyTries = errors.New("too many requests")
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Data: data})
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	status, apiErr := mapError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("unhandled error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if jsonErr := json.NewEncoder(w).Encode(Envelope{Error: &apiErr}); jsonErr != nil {
		logger.Error().Err(jsonErr).Msg("failed to send error response")
	}
}

func mapError(err error) (int, APIError) {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: validationErr.Fields,
		}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, APIError{
			Code:    "invalid_input",
			Message: "The request body is invalid",
		}
	case errors.Is(err, errUnknownRoute), errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "The requested resource was not found",
		}
	case errors.Is(err, errTooManyTries):
		return http.StatusTooManyRequests, APIError{
			Code:    "rate_limited",
			Message: "Too many attempts, please try again later",
		}
	case errors.Is(err, usecase.ErrCredential):
		return http.StatusUnauthorized, APIError{
			Code:    "credential_error",
			Message: err.Error(),
		}
	case errors.Is(err, usecase.ErrFederatedAuth):
		return http.StatusUnauthorized, APIError{
			Code:    "federated_auth_error",
			Message: "Sign-in with the provider did not complete",
		}
	case errors.Is(err, usecase.ErrAuthenticationRequired):
		return http.StatusUnauthorized, APIError{
			Code:     "authentication_required",
			Message:  "Please sign in to continue",
			Redirect: model.SignInPath,
		}
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden, APIError{
			Code:    "forbidden",
			Message: "You do not have permission to perform this action",
		}
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		return http.StatusConflict, APIError{
			Code:    "submission_in_progress",
			Message: "This application is already being submitted",
		}
	case errors.Is(err, usecase.ErrSubmissionFailed):
		return http.StatusInternalServerError, APIError{
			Code:    "submission_failed",
			Message: "Your application could not be submitted, please try again",
		}
	case errors.Is(err, usecase.ErrContactFailed):
		return http.StatusBadGateway, APIError{
			Code:    "contact_failed",
			Message: "Your message could not be sent, please try again later",
		}
	default:
		return http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		}
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(dst); err != nil {
		return errInvalidBody
	}

	return nil
}

// bindJSON decodes and validates a JSON body, answering the request itself on failure.
func bindJSON(
	w http.ResponseWriter,
	r *http.Request,
	v *validator.Validator,
	logger *zerolog.Logger,
	dst any,
) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeError(w, logger, err)
		return false
	}
	if err := v.Struct(dst); err != nil {
		writeError(w, logger, err)
		return false
	}

	return true
}
