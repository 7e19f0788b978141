package services

import (
	"context"
	"time"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
)

// MaskedPassword replaces stored passwords in the dashboard's user list.
const MaskedPassword = "********"

type Stats struct {
	TotalUsers     int       `json:"totalUsers"`
	FormsSubmitted int       `json:"formsSubmitted"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// FormSection is one sequencer page and its stored blob (empty if none).
type FormSection struct {
	Page models.Page
	Data models.FormBlob
}

type Dashboard struct {
	Panels   []Panel
	Actions  []QuickAction
	Greeting string
	Stats    Stats
	Session  models.User
	Users    []models.User
	Forms    []FormSection
}

type DashboardAggregator struct {
	repo *Repository
	now  func() time.Time
}

func NewDashboardAggregator(repo *Repository, now func() time.Time) *DashboardAggregator {
	if now == nil {
		now = time.Now
	}
	return &DashboardAggregator{repo: repo, now: now}
}

// Build assembles the admin dashboard. Sessions that are not admins get an
// error before any panel data is read.
func (a *DashboardAggregator) Build(ctx context.Context, profile string, user *models.User) (*Dashboard, error) {
	if user == nil {
		return nil, NewUnauthenticatedError("sign in to continue")
	}
	if !IsAdmin(user) {
		return nil, NewUnauthorizedError("administrator access required")
	}
	role := ProfileFor(user)

	users, err := a.repo.Users(ctx, profile)
	if err != nil {
		return nil, err
	}
	forms, err := a.formSections(ctx, profile)
	if err != nil {
		return nil, err
	}

	masked := make([]models.User, len(users))
	for i, u := range users {
		if u.Password != "" {
			u.Password = MaskedPassword
		}
		masked[i] = u
	}

	return &Dashboard{
		Panels:   role.DashboardPanels(),
		Actions:  role.QuickActions(),
		Greeting: user.DisplayName(),
		Stats:    a.stats(len(users), forms),
		Session:  *user,
		Users:    masked,
		Forms:    forms,
	}, nil
}

// Stats computes the statistics panel alone. Callers check admin access.
func (a *DashboardAggregator) Stats(ctx context.Context, profile string) (Stats, error) {
	users, err := a.repo.Users(ctx, profile)
	if err != nil {
		return Stats{}, err
	}
	forms, err := a.formSections(ctx, profile)
	if err != nil {
		return Stats{}, err
	}
	return a.stats(len(users), forms), nil
}

func (a *DashboardAggregator) stats(users int, forms []FormSection) Stats {
	submitted := 0
	for _, f := range forms {
		if len(f.Data) > 0 {
			submitted++
		}
	}
	return Stats{TotalUsers: users, FormsSubmitted: submitted, GeneratedAt: a.now()}
}

func (a *DashboardAggregator) formSections(ctx context.Context, profile string) ([]FormSection, error) {
	sections := make([]FormSection, 0, len(FormSequence))
	for _, p := range FormSequence {
		blob, err := a.repo.FormBlob(ctx, profile, p)
		if err != nil {
			return nil, err
		}
		if blob == nil {
			blob = models.FormBlob{}
		}
		sections = append(sections, FormSection{Page: p, Data: blob})
	}
	return sections, nil
}
