package services

import (
	"strings"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
)

type NavLink struct {
	Label  string
	Target string
	Active bool
}

// Nav is the navigation bar for one page view. A non-zero Redirect means the
// page must not be shown to this session.
type Nav struct {
	Links    []NavLink
	Redirect models.Page
}

// BuildNav lists the role's links and marks the one pointing at current.
// Signed-in sessions on Home, Sign In or Sign Up are redirected to the first
// form page.
func BuildNav(profile RoleProfile, current string) Nav {
	file := strings.ToLower(currentFile(current))

	pages := profile.NavLinks()
	nav := Nav{Links: make([]NavLink, 0, len(pages))}
	for _, p := range pages {
		nav.Links = append(nav.Links, NavLink{
			Label:  p.Label,
			Target: p.File,
			Active: strings.ToLower(p.File) == file,
		})
	}

	if profile.Authenticated() {
		if page, ok := models.LookupPage(file); ok && page.Type == models.PageAnonymous {
			nav.Redirect = FirstFormPage()
		}
	}
	return nav
}

func currentFile(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	if ref == "" {
		return models.PageHome.File
	}
	return ref
}
