package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/csrf"

	"github.com/AnshRaj112/dhrms-backend/internal/middleware"
	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

// Handler serves the DHRMS pages. Every request re-reads the session from
// the profile store; nothing is cached between requests.
type Handler struct {
	sessions   *services.SessionManager
	dashboards *services.DashboardAggregator
	repo       *services.Repository
	views      *Views
	metrics    *middleware.Metrics
	logger     log.Logger
	refresh    time.Duration
	origins    []string
}

type Options struct {
	Sessions   *services.SessionManager
	Dashboards *services.DashboardAggregator
	Repository *services.Repository
	Metrics    *middleware.Metrics
	Logger     log.Logger
	// DashboardRefresh is the push interval of the dashboard socket.
	DashboardRefresh time.Duration
	// AllowedOrigins may open the dashboard socket in addition to the site itself.
	AllowedOrigins []string
}

func New(opts Options) (*Handler, error) {
	views, err := ParseViews()
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNopLogger()
	}
	if opts.DashboardRefresh <= 0 {
		opts.DashboardRefresh = 5 * time.Second
	}
	return &Handler{
		sessions:   opts.Sessions,
		dashboards: opts.Dashboards,
		repo:       opts.Repository,
		views:      views,
		metrics:    opts.Metrics,
		logger:     opts.Logger,
		refresh:    opts.DashboardRefresh,
		origins:    opts.AllowedOrigins,
	}, nil
}

// request is the per-request view of the session: resolved once, then
// shared by the guard, the navigation bar and the page itself.
type request struct {
	profile string
	user    *models.User
	role    services.RoleProfile
}

func (h *Handler) resolve(ctx context.Context) (request, error) {
	profile := middleware.ProfileFromContext(ctx)
	user, err := h.sessions.CurrentUser(ctx, profile)
	if err != nil {
		return request{}, err
	}
	return request{profile: profile, user: user, role: services.ProfileFor(user)}, nil
}

// enter resolves the session and runs the page guard. It writes the
// redirect or error response itself and returns ok=false when the page must
// not be served.
func (h *Handler) enter(w http.ResponseWriter, r *http.Request, page models.Page) (request, bool) {
	req, err := h.resolve(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return req, false
	}

	d := services.Guard(page, req.role)
	if d.Allowed() {
		return req, true
	}
	target := d.Redirect.Path()
	if services.IsUnauthenticated(d.Err) && page.Type == models.PageForm {
		target += "?next=" + url.QueryEscape(page.Path())
	}
	redirect(w, r, target, guardNotice(d))
	return req, false
}

func (h *Handler) pageData(r *http.Request, req request, page models.Page) *pageData {
	return &pageData{
		Title:     page.Label,
		Page:      page,
		Nav:       services.BuildNav(req.role, page.File),
		User:      req.user,
		IsAdmin:   services.IsAdmin(req.user),
		Notice:    lookupNotice(r.URL.Query().Get("notice")),
		Actions:   req.role.QuickActions(),
		CSRFToken: csrf.Token(r),
	}
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	level.Error(h.logger).Log("msg", "request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	h.views.render(w, http.StatusInternalServerError, "error", &pageData{
		Title: "Something went wrong",
		Error: "The request could not be completed. Please try again.",
		Nav:   services.BuildNav(services.ProfileFor(nil), ""),
	}, h.logger)
}

// CSRFFailure answers a state-changing request whose form token is missing
// or does not match the token cookie.
func (h *Handler) CSRFFailure(w http.ResponseWriter, r *http.Request) {
	level.Warn(h.logger).Log("msg", "csrf check failed", "method", r.Method, "path", r.URL.Path,
		"reason", csrf.FailureReason(r))
	h.views.render(w, http.StatusForbidden, "error", &pageData{
		Title: "Request rejected",
		Error: "This form has expired. Please reload the page and try again.",
		Nav:   services.BuildNav(services.ProfileFor(nil), ""),
	}, h.logger)
}

// Health is the liveness check.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
