package services

import (
	"context"
	"encoding/json"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/database"
	"github.com/AnshRaj112/dhrms-backend/internal/models"
)

// Store keys inside one profile namespace.
const (
	KeyUsers       = "users"
	KeyCurrentUser = "current_user"
	formKeyPrefix  = "form_"
)

// FormKey is the key a page's last submission is stored under.
func FormKey(page models.Page) string {
	return formKeyPrefix + page.Name
}

// Repository reads and writes the JSON records of a profile. Malformed
// records read back as empty.
type Repository struct {
	store  database.Store
	logger log.Logger
}

func NewRepository(store database.Store, logger log.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

func (r *Repository) Users(ctx context.Context, profile string) ([]models.User, error) {
	var users []models.User
	ok, err := r.load(ctx, profile, KeyUsers, &users)
	if err != nil || !ok {
		return nil, err
	}
	return users, nil
}

func (r *Repository) SaveUsers(ctx context.Context, profile string, users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return r.save(ctx, profile, KeyUsers, users)
}

// CurrentUser returns nil when no session exists.
func (r *Repository) CurrentUser(ctx context.Context, profile string) (*models.User, error) {
	var u models.User
	ok, err := r.load(ctx, profile, KeyCurrentUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	if u.ID == "" && u.Username == "" {
		return nil, nil
	}
	return &u, nil
}

func (r *Repository) SetCurrentUser(ctx context.Context, profile string, u models.User) error {
	return r.save(ctx, profile, KeyCurrentUser, u)
}

func (r *Repository) ClearCurrentUser(ctx context.Context, profile string) error {
	if err := r.store.Remove(ctx, profile, KeyCurrentUser); err != nil {
		return NewInternalError("failed to remove session", err)
	}
	return nil
}

// FormBlob returns nil when the page was never submitted.
func (r *Repository) FormBlob(ctx context.Context, profile string, page models.Page) (models.FormBlob, error) {
	var blob models.FormBlob
	ok, err := r.load(ctx, profile, FormKey(page), &blob)
	if err != nil || !ok {
		return nil, err
	}
	return blob, nil
}

func (r *Repository) SaveFormBlob(ctx context.Context, profile string, page models.Page, blob models.FormBlob) error {
	return r.save(ctx, profile, FormKey(page), blob)
}

// Clear wipes the whole profile namespace.
func (r *Repository) Clear(ctx context.Context, profile string) error {
	if err := r.store.Clear(ctx, profile); err != nil {
		return NewInternalError("failed to clear profile data", err)
	}
	return nil
}

func (r *Repository) load(ctx context.Context, profile, key string, v any) (bool, error) {
	raw, ok, err := r.store.Get(ctx, profile, key)
	if err != nil {
		return false, NewInternalError("failed to read "+key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		level.Debug(r.logger).Log("msg", "ignoring malformed record", "profile", profile, "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, profile, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return NewInternalError("failed to encode "+key, err)
	}
	if err := r.store.Set(ctx, profile, key, raw); err != nil {
		return NewInternalError("failed to write "+key, err)
	}
	return nil
}
