package services

import "github.com/AnshRaj112/dhrms-backend/internal/models"

// Panel is one section of the admin dashboard.
type Panel string

const (
	PanelAdminHeader    Panel = "admin_header"
	PanelStats          Panel = "stats"
	PanelCurrentSession Panel = "current_session"
	PanelUsers          Panel = "users"
	PanelFormData       Panel = "form_data"
)

// QuickAction is a shortcut shown on the home page and the dashboard.
// Method is POST for actions that change state.
type QuickAction struct {
	Label  string
	Target string
	Method string
}

// RoleProfile bundles everything that differs between roles. One is picked
// per request with ProfileFor.
type RoleProfile interface {
	Role() models.Role
	Authenticated() bool
	NavLinks() []models.Page
	DashboardPanels() []Panel
	QuickActions() []QuickAction
}

// ProfileFor selects the profile for the current session; nil means anonymous.
func ProfileFor(u *models.User) RoleProfile {
	switch {
	case u == nil:
		return anonymousProfile{}
	case IsAdmin(u):
		return adminProfile{}
	case u.EffectiveRole() == models.RoleHealthcare:
		return healthcareProfile{}
	default:
		return migrantProfile{}
	}
}

var (
	signOutAction = QuickAction{Label: "Sign Out", Target: "/logout", Method: "POST"}
	anonymousNav  = []models.Page{models.PageHome, models.PageSignIn, models.PageSignUp}
)

type anonymousProfile struct{}

func (anonymousProfile) Role() models.Role        { return "" }
func (anonymousProfile) Authenticated() bool      { return false }
func (anonymousProfile) NavLinks() []models.Page  { return anonymousNav }
func (anonymousProfile) DashboardPanels() []Panel { return nil }
func (anonymousProfile) QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Sign In", Target: models.PageSignIn.Path(), Method: "GET"},
		{Label: "Create Account", Target: models.PageSignUp.Path(), Method: "GET"},
	}
}

type migrantProfile struct{}

func (migrantProfile) Role() models.Role        { return models.RoleMigrant }
func (migrantProfile) Authenticated() bool      { return true }
func (migrantProfile) NavLinks() []models.Page  { return FormSequence }
func (migrantProfile) DashboardPanels() []Panel { return nil }
func (migrantProfile) QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Fill in my worker record", Target: models.PageWorkers.Path(), Method: "GET"},
		{Label: "Add a vaccination", Target: models.PageVaccinations.Path(), Method: "GET"},
		signOutAction,
	}
}

type healthcareProfile struct{}

func (healthcareProfile) Role() models.Role        { return models.RoleHealthcare }
func (healthcareProfile) Authenticated() bool      { return true }
func (healthcareProfile) NavLinks() []models.Page  { return FormSequence }
func (healthcareProfile) DashboardPanels() []Panel { return nil }
func (healthcareProfile) QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Record a health check", Target: models.PageHealthRecords.Path(), Method: "GET"},
		{Label: "Log a medical visit", Target: models.PageMedicalVisits.Path(), Method: "GET"},
		{Label: "Register a facility", Target: models.PageFacilities.Path(), Method: "GET"},
		signOutAction,
	}
}

type adminProfile struct{}

func (adminProfile) Role() models.Role   { return models.RoleAdmin }
func (adminProfile) Authenticated() bool { return true }
func (adminProfile) NavLinks() []models.Page {
	return append(append([]models.Page{}, FormSequence...), models.PageDashboard)
}
func (adminProfile) DashboardPanels() []Panel {
	return []Panel{PanelAdminHeader, PanelStats, PanelCurrentSession, PanelUsers, PanelFormData}
}
func (adminProfile) QuickActions() []QuickAction {
	return []QuickAction{
		{Label: "Open Dashboard", Target: models.PageDashboard.Path(), Method: "GET"},
		{Label: "Clear Local Data", Target: "/dashboard/clear", Method: "POST"},
		signOutAction,
	}
}
