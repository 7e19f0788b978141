package services

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kit/log"

	"github.com/AnshRaj112/dhrms-backend/internal/database"
)

var errStoreDown = errors.New("store unavailable")

// failingStore fails every call.
type failingStore struct{}

func (failingStore) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, errStoreDown
}
func (failingStore) Set(context.Context, string, string, []byte) error { return errStoreDown }
func (failingStore) Remove(context.Context, string, string) error      { return errStoreDown }
func (failingStore) Clear(context.Context, string) error               { return errStoreDown }

var testAdmin = AdminCredentials{Username: "admin", Password: "admin123", Email: "admin@dhrms.com"}

func newTestManager(t *testing.T, scheme PasswordScheme) (*SessionManager, *Repository, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	repo := NewRepository(store, log.NewNopLogger())
	return NewSessionManager(repo, testAdmin, scheme, log.NewNopLogger()), repo, store
}

func validSignUp() SignUpInput {
	return SignUpInput{
		ID:              "W-001",
		FullName:        "Ravi Kumar",
		Username:        "ravi",
		Email:           "ravi@example.in",
		Phone:           "+91 98765 43210",
		Gender:          "Male",
		DOB:             "1990-04-12",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AcceptedTerms:   true,
	}
}
