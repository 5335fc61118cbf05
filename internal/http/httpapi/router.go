package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"fundraiser/internal/auth"
	"fundraiser/internal/domain"
	"fundraiser/internal/http/handlers"
	"fundraiser/internal/middleware"
)

// RouterOptions carries the router's cross-cutting configuration.
type RouterOptions struct {
	Logger          zerolog.Logger
	Tokens          *auth.TokenService
	CORSOrigins     []string
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSOrigins),
		middleware.AuthGate(opts.Tokens, opts.Logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", app.Login)
		r.Post("/logout", app.Logout)
		r.Get("/me", app.Me)
	})

	r.Route("/donations", func(r chi.Router) {
		limit := opts.RateLimitPerMin
		if limit <= 0 {
			limit = 60
		}
		r.With(middleware.RateLimit(limit, time.Minute)).Post("/", app.DonationsCreate)
		r.Get("/recent", app.DonationsRecent)
	})

	r.Route("/payments", func(r chi.Router) {
		r.Post("/verify", app.PaymentsVerify)
		r.Get("/status", app.PaymentsStatus)
	})

	r.Get("/batches/leaderboard", app.BatchLeaderboard)

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.RequireRole(opts.Tokens, domain.RoleSuperAdmin, domain.RoleStaff))
		r.Get("/donations", app.AdminDonations)
	})

	return r
}
