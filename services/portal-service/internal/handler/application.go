package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/model"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/payload"
	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

const (
	maxApplicationBytes = 10 << 20
	resumeField         = "resume"
)

type applicationHTTPHandler struct {
	applicationUsecase usecase.ApplicationUsecase
	dashboardUsecase   usecase.DashboardUsecase
	validator          *validator.Validator
	logger             *zerolog.Logger
}

// Submit handles the multipart apply form. The résumé part is counted, never read.
func (h *applicationHTTPHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, usecase.ErrAuthenticationRequired)
		return
	}

	applicationType, ok := model.ParseApplicationType(chi.URLParam(r, "type"))
	if !ok {
		writeError(w, h.logger, errUnknownRoute)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxApplicationBytes)
	if err := r.ParseMultipartForm(maxApplicationBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, h.logger, errInvalidBody)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	form := payload.ApplicationForm{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Phone:       r.FormValue("phone"),
		Skills:      r.FormValue("skills"),
		CoverLetter: r.FormValue("coverLetter"),
	}
	if err := validateApplicationForm(h.validator, form, applicationType, resumeCount(r)); err != nil {
		writeError(w, h.logger, err)
		return
	}

	outcome, err := h.applicationUsecase.SubmitApplication(r.Context(), usecase.SubmitApplicationParams{
		UID:         claims.UserID,
		Type:        applicationType,
		PostingID:   r.URL.Query().Get("id"),
		Name:        form.Name,
		Email:       form.Email,
		Phone:       form.Phone,
		Skills:      form.Skills,
		CoverLetter: form.CoverLetter,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := payload.SubmitApplicationResponse{
		Application:         outcome.Application,
		Next:                string(outcome.Next),
		RedirectPath:        outcome.RedirectPath,
		DismissRedirectPath: outcome.DismissRedirectPath,
	}
	if outcome.Payment != nil {
		resp.Payment = &payload.PaymentResponse{
			Title:       outcome.Payment.Title,
			Description: outcome.Payment.Description,
			QRImageURL:  outcome.Payment.QRImageURL,
		}
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *applicationHTTPHandler) StudentDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, usecase.ErrAuthenticationRequired)
		return
	}

	dashboard, err := h.dashboardUsecase.StudentDashboard(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.StudentDashboardResponse{
		Courses:      applicationViews(dashboard.Courses),
		Careers:      applicationViews(dashboard.Careers),
		TotalCareers: dashboard.TotalCareers,
	})
}

func (h *applicationHTTPHandler) EmployerDashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, usecase.ErrAuthenticationRequired)
		return
	}

	dashboard, err := h.dashboardUsecase.EmployerDashboard(r.Context(), model.Role(claims.Role))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.EmployerDashboardResponse{
		Applications: applicationViews(dashboard.Applications),
	})
}

// validateApplicationForm merges the résumé count rule into the field errors.
func validateApplicationForm(
	v *validator.Validator,
	form payload.ApplicationForm,
	applicationType model.ApplicationType,
	resumes int,
) error {
	var fields []validator.FieldError

	if err := v.Struct(form); err != nil {
		var validationErr *validator.ValidationError
		if !errors.As(err, &validationErr) {
			return err
		}
		fields = append(fields, validationErr.Fields...)
	}

	if applicationType.RequiresResume() && resumes != 1 {
		fields = append(fields, validator.FieldError{
			Field:   resumeField,
			Message: "exactly one resume file is required",
		})
	}

	if len(fields) > 0 {
		return &validator.ValidationError{Fields: fields}
	}

	return nil
}

func resumeCount(r *http.Request) int {
	if r.MultipartForm == nil {
		return 0
	}
	return len(r.MultipartForm.File[resumeField])
}

func applicationViews(views []usecase.ApplicationView) []payload.ApplicationView {
	out := make([]payload.ApplicationView, 0, len(views))
	for _, view := range views {
		out = append(out, payload.ApplicationView{Application: view.Application, Title: view.Title})
	}
	return out
}
