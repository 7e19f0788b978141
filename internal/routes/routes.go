package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/log"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AnshRaj112/dhrms-backend/internal/config"
	"github.com/AnshRaj112/dhrms-backend/internal/handlers"
	"github.com/AnshRaj112/dhrms-backend/internal/middleware"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

type Options struct {
	Config   *config.Config
	Handler  *handlers.Handler
	Tokens   middleware.ProfileIssuer
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer
	Logger   log.Logger
}

// NewRouter wires middleware and every page route.
func NewRouter(o Options) *chi.Mux {
	cfg := o.Config
	h := o.Handler

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	if o.Metrics != nil {
		r.Use(o.Metrics.Instrument)
	}

	// Infrastructure (no profile cookie)
	r.Get("/health", handlers.Health)
	if o.Gatherer != nil {
		r.Handle("/metrics", middleware.Handler(o.Gatherer))
	}
	r.Handle("/static/*", handlers.Static())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Profiles(o.Tokens, cfg.IsProduction(), o.Logger))
		r.Use(middleware.RequestLogger(o.Logger))
		// Every POST carries the form token; GETs (the dashboard socket
		// included) only receive the token cookie.
		r.Use(csrf.Protect(cfg.CSRFKey(),
			csrf.Secure(cfg.IsProduction()),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
			csrf.ErrorHandler(http.HandlerFunc(h.CSRFFailure)),
		))

		r.Get("/", h.Home)
		r.Get("/index.html", h.Home)

		limiter := middleware.NewLoginLimiter(cfg.LoginRateEvery, cfg.LoginRateBurst)
		limiter.TrustProxy(cfg.TrustProxy)
		limiter.OnReject(func(*http.Request) { o.Metrics.AuthEvent("credentials", "throttled") })
		r.Group(func(r chi.Router) {
			r.Use(limiter.Limit)
			r.Get("/signin.html", h.SignInPage)
			r.Post("/signin.html", h.SignIn)
			r.Get("/signup.html", h.SignUpPage)
			r.Post("/signup.html", h.SignUp)
		})

		for _, page := range services.FormSequence {
			r.Get(page.Path(), h.FormPage(page))
			r.Post(page.Path(), h.SaveForm(page))
		}

		r.Get("/dashboard.html", h.Dashboard)
		r.Post("/dashboard/clear", h.DashboardClear)
		r.Get("/ws/dashboard", h.DashboardStream)

		r.Post("/logout", h.Logout)
	})

	return r
}
