package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/payload"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

type authHTTPHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.Validator
	logger      *zerolog.Logger
}

func (h *authHTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.SignUpRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.SignUpWithEmail(r.Context(), usecase.SignUpParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Client:    clientInfo(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse(result))
}

func (h *authHTTPHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.SignInRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.SignInWithEmail(r.Context(), usecase.SignInParams{
		Email:    req.Email,
		Password: req.Password,
		Client:   clientInfo(r),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func (h *authHTTPHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleSignInRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.SignInWithGoogle(r.Context(), usecase.GoogleSignInParams{
		IDToken:     req.IDToken,
		AccessToken: req.AccessToken,
		PopupError:  req.Error,
		Client:      clientInfo(r),
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("google sign-in failed")
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func (h *authHTTPHandler) Facebook(w http.ResponseWriter, r *http.Request) {
	var req payload.FacebookSignInRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.SignInWithFacebook(r.Context(), usecase.FacebookSignInParams{
		AccessToken: req.AccessToken,
		PopupError:  req.Error,
		Client:      clientInfo(r),
	})
	if err != nil {
		h.logger.Warn().Err(err).Msg("facebook sign-in failed")
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func (h *authHTTPHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req payload.RefreshRequest
	if !h.bind(w, r, &req) {
		return
	}

	result, err := h.authUsecase.Refresh(r.Context(), req.RefreshToken, clientInfo(r))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse(result))
}

func (h *authHTTPHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	if err := h.authUsecase.SignOut(r.Context(), claims); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *authHTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, usecase.ErrAuthenticationRequired)
		return
	}

	profile, err := h.authUsecase.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.ProfileResponse{
		UID:         profile.UID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		PhotoURL:    profile.PhotoURL,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		LastLogin:   profile.LastLogin,
		SignUpDate:  profile.SignUpDate,
		Role:        model.Role(claims.Role),
	})
}

func (h *authHTTPHandler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	return bindJSON(w, r, h.validator, h.logger, dst)
}

func authResponse(result *usecase.AuthResult) payload.AuthResponse {
	return payload.AuthResponse{
		Session: payload.SessionResponse{
			AccessToken:  result.Tokens.AccessToken,
			RefreshToken: result.Tokens.RefreshToken,
			ExpiresAt:    result.Tokens.AccessTokenExpiresAt,
		},
		User: payload.UserResponse{
			UID:         result.Principal.UID,
			Email:       result.Principal.Email,
			DisplayName: result.Principal.DisplayName,
			PhotoURL:    result.Principal.PhotoURL,
		},
		Role:         result.Role,
		RedirectPath: result.RedirectPath,
	}
}
