package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/workers.html", "/workers.html"},
		{"VACCINATIONS.HTML", "/vaccinations.html"},
		{"https://evil.example/medical.html", "/medical.html"},
		{"/dashboard.html", ""},
		{"/signin.html", ""},
		{"/nope.html", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.in), tt.in)
	}
}

func TestLookupNotice(t *testing.T) {
	n := lookupNotice(NoticeSaved)
	require.NotNil(t, n)
	assert.Equal(t, "ok", n.Tone)
	assert.Nil(t, lookupNotice("<script>"))
	assert.Nil(t, lookupNotice(""))
}

func TestGuardNotice(t *testing.T) {
	assert.Equal(t, NoticeLoginRequired, guardNotice(services.Decision{Err: services.NewUnauthenticatedError("x")}))
	assert.Equal(t, NoticeAdminOnly, guardNotice(services.Decision{Err: services.NewUnauthorizedError("x")}))
	assert.Equal(t, NoticeAlreadySignedIn, guardNotice(services.Decision{Redirect: models.PageWorkers}))
}

func TestRedirectCarriesNotice(t *testing.T) {
	rec := httptest.NewRecorder()
	redirect(rec, httptest.NewRequest(http.MethodPost, "/signin.html", nil), "/workers.html", NoticeSignedIn)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/workers.html?notice=signed-in", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	redirect(rec, httptest.NewRequest(http.MethodGet, "/", nil), "/index.html", "")
	assert.Equal(t, "/index.html", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	redirect(rec, httptest.NewRequest(http.MethodGet, "/medical.html", nil), "/index.html?next=%2Fmedical.html", NoticeLoginRequired)
	assert.Equal(t, "/index.html?next=%2Fmedical.html&notice=login-required", rec.Header().Get("Location"))
}

func TestWithReturnTo(t *testing.T) {
	actions := services.ProfileFor(nil).QuickActions()
	got := withReturnTo(actions, "/medical.html")

	require.Len(t, got, len(actions))
	assert.Equal(t, "/signin.html?next=%2Fmedical.html", got[0].Target)
	assert.Equal(t, "/signup.html", got[1].Target)
	assert.Equal(t, "/signin.html", actions[0].Target, "the role's own actions are not modified")
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Email address is not valid.", errorMessage(services.NewValidationError("email", "email address is not valid")))
	assert.Equal(t, "email", errorField(services.NewValidationError("email", "bad")))
	assert.Equal(t, "The request could not be completed.", errorMessage(errors.New("boom")))
	assert.Equal(t, "", errorField(errors.New("boom")))
}

func TestCheckOrigin(t *testing.T) {
	h := &Handler{origins: []string{"https://app.example"}}

	req := httptest.NewRequest(http.MethodGet, "http://dhrms.local/ws/dashboard", nil)
	assert.True(t, h.checkOrigin(req), "no origin header")

	req.Header.Set("Origin", "http://dhrms.local")
	assert.True(t, h.checkOrigin(req), "same host")

	req.Header.Set("Origin", "https://APP.example")
	assert.True(t, h.checkOrigin(req), "allowed origin")

	req.Header.Set("Origin", "https://evil.example")
	assert.False(t, h.checkOrigin(req))
}

func TestParseViews(t *testing.T) {
	views, err := ParseViews()
	require.NoError(t, err)

	for _, name := range pageTemplates {
		rec := httptest.NewRecorder()
		views.render(rec, http.StatusOK, name, &pageData{
			Title: "Test",
			Page:  models.PageHome,
			Nav:   services.BuildNav(services.ProfileFor(nil), ""),
		}, log.NewNopLogger())
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "<title>Test · DHRMS</title>", name)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	views, err := ParseViews()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	views.render(rec, http.StatusOK, "missing", &pageData{}, log.NewNopLogger())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
