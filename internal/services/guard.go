package services

import "github.com/AnshRaj112/dhrms-backend/internal/models"

// Decision is the outcome of a page guard. A zero Redirect lets the page render.
type Decision struct {
	Redirect models.Page
	Err      error
}

func (d Decision) Allowed() bool {
	return d.Redirect.IsZero()
}

// Guard runs the check for page's type before anything is rendered.
func Guard(page models.Page, profile RoleProfile) Decision {
	switch page.Type {
	case models.PageAnonymous:
		if profile.Authenticated() {
			return Decision{Redirect: FirstFormPage()}
		}
	case models.PageForm:
		if !profile.Authenticated() {
			return Decision{Redirect: models.PageHome, Err: NewUnauthenticatedError("sign in to continue")}
		}
	case models.PageTypeDashboard:
		if !profile.Authenticated() {
			return Decision{Redirect: models.PageHome, Err: NewUnauthenticatedError("sign in to continue")}
		}
		if profile.Role() != models.RoleAdmin {
			return Decision{Redirect: FirstFormPage(), Err: NewUnauthorizedError("administrator access required")}
		}
	}
	return Decision{}
}
