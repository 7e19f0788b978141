package models

import (
	"path"
	"strings"
)

// PageType tags a page with the guard that runs before it renders.
type PageType string

const (
	PageAnonymous     PageType = "anonymous"
	PageForm          PageType = "form"
	PageTypeDashboard PageType = "dashboard"
)

// Page is one navigable page of the site. File doubles as the link target.
type Page struct {
	Name  string
	File  string
	Label string
	Type  PageType
}

// Path is the URL path the page is served from.
func (p Page) Path() string {
	return "/" + p.File
}

// IsZero reports whether p is the "no page" value.
func (p Page) IsZero() bool {
	return p.File == ""
}

var (
	PageHome          = Page{Name: "index", File: "index.html", Label: "Home", Type: PageAnonymous}
	PageSignIn        = Page{Name: "signin", File: "signin.html", Label: "Sign In", Type: PageAnonymous}
	PageSignUp        = Page{Name: "signup", File: "signup.html", Label: "Sign Up", Type: PageAnonymous}
	PageWorkers       = Page{Name: "workers", File: "workers.html", Label: "Workers", Type: PageForm}
	PageHealthRecords = Page{Name: "health_records", File: "health_records.html", Label: "Health Records", Type: PageForm}
	PageVaccinations  = Page{Name: "vaccinations", File: "vaccinations.html", Label: "Vaccinations", Type: PageForm}
	PageMedicalVisits = Page{Name: "medical", File: "medical.html", Label: "Medical Visits", Type: PageForm}
	PageFacilities    = Page{Name: "facilities", File: "facilities.html", Label: "Facilities", Type: PageForm}
	PageDashboard     = Page{Name: "dashboard", File: "dashboard.html", Label: "Dashboard", Type: PageTypeDashboard}
)

var allPages = []Page{
	PageHome, PageSignIn, PageSignUp,
	PageWorkers, PageHealthRecords, PageVaccinations, PageMedicalVisits, PageFacilities,
	PageDashboard,
}

// LookupPage finds a page by file name, URL path, name or label, ignoring case.
// An empty reference or "/" resolves to Home.
func LookupPage(ref string) (Page, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "/" {
		return PageHome, true
	}
	base := path.Base(ref)
	for _, p := range allPages {
		if strings.EqualFold(p.File, base) || strings.EqualFold(p.Name, ref) || strings.EqualFold(p.Label, ref) {
			return p, true
		}
	}
	return Page{}, false
}
