package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/gorilla/websocket"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

// Dashboard renders every admin panel. Non-admins are redirected by the guard
// before any panel is assembled.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageDashboard)
	if !ok {
		return
	}
	dash, err := h.dashboards.Build(r.Context(), req.profile, req.user)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	data := h.pageData(r, req, models.PageDashboard)
	data.Dashboard = dash
	data.RefreshSeconds = int(h.refresh / time.Second)
	h.views.render(w, http.StatusOK, "dashboard", data, h.logger)
}

// DashboardClear wipes the whole profile namespace, session included.
func (h *Handler) DashboardClear(w http.ResponseWriter, r *http.Request) {
	req, ok := h.enter(w, r, models.PageDashboard)
	if !ok {
		return
	}
	if err := h.repo.Clear(r.Context(), req.profile); err != nil {
		h.serverError(w, r, err)
		return
	}
	level.Info(h.logger).Log("msg", "profile data cleared", "profile", req.profile)
	redirect(w, r, models.PageHome.Path(), NoticeCleared)
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// DashboardStream pushes the statistics panel to an admin session over a
// WebSocket until the client leaves or the session stops being an admin.
func (h *Handler) DashboardStream(w http.ResponseWriter, r *http.Request) {
	req, err := h.resolve(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	switch services.KindOf(services.Guard(models.PageDashboard, req.role).Err) {
	case services.KindUnauthenticated:
		http.Error(w, "sign in required", http.StatusUnauthorized)
		return
	case services.KindUnauthorized:
		http.Error(w, "administrator access required", http.StatusForbidden)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		level.Debug(h.logger).Log("msg", "websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Hijacked connections do not cancel the request context; the reader
	// loop below does.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	refresh := time.NewTicker(h.refresh)
	defer refresh.Stop()
	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	if !h.pushStats(ctx, conn, req.profile) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-refresh.C:
			if !h.pushStats(ctx, conn, req.profile) {
				return
			}
		}
	}
}

// pushStats sends one stats frame. It returns false when the stream must end.
func (h *Handler) pushStats(ctx context.Context, conn *websocket.Conn, profile string) bool {
	user, err := h.sessions.CurrentUser(ctx, profile)
	if err != nil {
		level.Error(h.logger).Log("msg", "dashboard stream failed", "profile", profile, "err", err)
		return false
	}
	if !services.IsAdmin(user) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session ended"),
			time.Now().Add(wsWriteWait))
		return false
	}
	stats, err := h.dashboards.Stats(ctx, profile)
	if err != nil {
		level.Error(h.logger).Log("msg", "dashboard stream failed", "profile", profile, "err", err)
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(stats) == nil
}

// checkOrigin accepts same-host pages and the configured CORS origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.origins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}
