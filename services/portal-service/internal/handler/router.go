package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/careers-portal/services/portal-service/internal/usecase"
	"github.com/vasapolrittideah/careers-portal/shared/validator"
)

// RouterDeps is everything the HTTP API needs.
type RouterDeps struct {
	AuthUsecase        usecase.AuthUsecase
	ApplicationUsecase usecase.ApplicationUsecase
	DashboardUsecase   usecase.DashboardUsecase
	ContactUsecase     usecase.ContactUsecase
	AuthRateLimiter    RateLimiter
	Validator          *validator.Validator
	FrontendURL        string
	TrustProxy         bool
	Logger             *zerolog.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	authHandler := &authHTTPHandler{
		authUsecase: deps.AuthUsecase,
		validator:   deps.Validator,
		logger:      deps.Logger,
	}
	applicationHandler := &applicationHTTPHandler{
		applicationUsecase: deps.ApplicationUsecase,
		dashboardUsecase:   deps.DashboardUsecase,
		validator:          deps.Validator,
		logger:             deps.Logger,
	}
	publicHandler := &publicHTTPHandler{
		contactUsecase: deps.ContactUsecase,
		validator:      deps.Validator,
		logger:         deps.Logger,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if deps.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", publicHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/jobs", publicHandler.Jobs)
		r.Post("/contact", publicHandler.Contact)

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(RateLimit(deps.AuthRateLimiter, deps.Logger))

				r.Post("/signup", authHandler.SignUp)
				r.Post("/signin", authHandler.SignIn)
				r.Post("/google", authHandler.Google)
				r.Post("/facebook", authHandler.Facebook)
				r.Post("/refresh", authHandler.Refresh)
			})

			r.Group(func(r chi.Router) {
				r.Use(BearerAuth(deps.AuthUsecase, deps.Logger))

				r.Post("/signout", authHandler.SignOut)
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(deps.AuthUsecase, deps.Logger))

			r.Post("/applications/{type}", applicationHandler.Submit)
			r.Get("/student/dashboard", applicationHandler.StudentDashboard)

			r.With(RequireAdmin(deps.Logger)).Get("/employer/dashboard", applicationHandler.EmployerDashboard)
		})
	})

	return r
}
