package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

// Notice codes travel in the ?notice= query parameter of a redirect.
const (
	NoticeSignedIn        = "signed-in"
	NoticeAdminSignedIn   = "admin-signed-in"
	NoticeRegistered      = "registered"
	NoticeSignedOut       = "signed-out"
	NoticeSaved           = "saved"
	NoticeLoginRequired   = "login-required"
	NoticeAdminOnly       = "admin-only"
	NoticeAlreadySignedIn = "already-signed-in"
	NoticeCleared         = "cleared"
)

type notice struct {
	Code    string
	Message string
	Tone    string // ok, info or warn
}

var notices = map[string]notice{
	NoticeSignedIn:        {NoticeSignedIn, "Sign in successful.", "ok"},
	NoticeAdminSignedIn:   {NoticeAdminSignedIn, "Admin login successful.", "ok"},
	NoticeRegistered:      {NoticeRegistered, "Registration successful.", "ok"},
	NoticeSignedOut:       {NoticeSignedOut, "Logged out successfully.", "ok"},
	NoticeSaved:           {NoticeSaved, "Your record has been saved.", "ok"},
	NoticeLoginRequired:   {NoticeLoginRequired, "Please sign in to continue.", "warn"},
	NoticeAdminOnly:       {NoticeAdminOnly, "Access denied. Admin privileges required.", "warn"},
	NoticeAlreadySignedIn: {NoticeAlreadySignedIn, "You are already logged in. Please logout to access this page.", "info"},
	NoticeCleared:         {NoticeCleared, "All local data cleared.", "ok"},
}

// lookupNotice ignores unknown codes so the query string cannot inject text.
func lookupNotice(code string) *notice {
	n, ok := notices[code]
	if !ok {
		return nil
	}
	return &n
}

func guardNotice(d services.Decision) string {
	switch services.KindOf(d.Err) {
	case services.KindUnauthenticated:
		return NoticeLoginRequired
	case services.KindUnauthorized:
		return NoticeAdminOnly
	}
	return NoticeAlreadySignedIn
}

// redirect sends a 303 so a POST is never replayed by a reload.
func redirect(w http.ResponseWriter, r *http.Request, target, noticeCode string) {
	if noticeCode != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "notice=" + url.QueryEscape(noticeCode)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
