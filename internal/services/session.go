package services

import (
	"context"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/AnshRaj112/dhrms-backend/internal/models"
	"github.com/AnshRaj112/dhrms-backend/pkg/utils"
)

// DefaultAdminUsername is recognised as an administrator even without a role.
const DefaultAdminUsername = "admin"

// PasswordScheme decides how new passwords are written to the users list.
type PasswordScheme string

const (
	SchemePlain    PasswordScheme = "plain"
	SchemeArgon2id PasswordScheme = "argon2id"
)

// ParsePasswordScheme falls back to plain for unknown values.
func ParsePasswordScheme(s string) PasswordScheme {
	if PasswordScheme(strings.ToLower(strings.TrimSpace(s))) == SchemeArgon2id {
		return SchemeArgon2id
	}
	return SchemePlain
}

// AdminCredentials is the built-in administrator. It never appears in the
// users list.
type AdminCredentials struct {
	Username string
	Password string
	Email    string
}

func (a AdminCredentials) sessionUser() models.User {
	return models.User{
		ID:       "admin",
		FullName: "System Administrator",
		Username: a.Username,
		Email:    a.Email,
		Role:     models.RoleAdmin,
	}
}

// IdentifierField is the user attribute a sign-in is matched on.
type IdentifierField string

const (
	FieldID       IdentifierField = "id"
	FieldUsername IdentifierField = "username"
	FieldEmail    IdentifierField = "email"
	FieldPhone    IdentifierField = "phone"
)

// ParseIdentifierField defaults to email.
func ParseIdentifierField(s string) (IdentifierField, bool) {
	switch f := IdentifierField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FieldEmail, true
	case FieldID, FieldUsername, FieldEmail, FieldPhone:
		return f, true
	}
	return "", false
}

type Credentials struct {
	Field    IdentifierField
	Value    string
	Password string
}

type SignUpInput struct {
	ID              string
	FullName        string
	Username        string
	Email           string
	Phone           string
	Gender          string
	DOB             string
	Password        string
	ConfirmPassword string
	Role            string
	AcceptedTerms   bool

	MedicalLicense string
	Specialization string
	Facility       string
}

// SessionManager owns the users list and the current session of each profile.
type SessionManager struct {
	repo   *Repository
	admin  AdminCredentials
	scheme PasswordScheme
	logger log.Logger
	locks  *profileLocks
}

func NewSessionManager(repo *Repository, admin AdminCredentials, scheme PasswordScheme, logger log.Logger) *SessionManager {
	if admin.Username == "" {
		admin.Username = DefaultAdminUsername
	}
	return &SessionManager{
		repo:   repo,
		admin:  admin,
		scheme: scheme,
		logger: logger,
		locks:  newProfileLocks(),
	}
}

// SignUp registers a user and makes it the current session.
func (m *SessionManager) SignUp(ctx context.Context, profile string, in SignUpInput) (models.User, error) {
	user, err := m.validateSignUp(in)
	if err != nil {
		return models.User{}, err
	}

	unlock := m.locks.lock(profile)
	defer unlock()

	users, err := m.repo.Users(ctx, profile)
	if err != nil {
		return models.User{}, err
	}
	if err := m.checkUnique(users, user); err != nil {
		return models.User{}, err
	}

	stored := user
	if m.scheme == SchemeArgon2id {
		hash, err := utils.HashPassword(user.Password)
		if err != nil {
			return models.User{}, NewInternalError("failed to hash password", err)
		}
		stored.Password = hash
	}

	if err := m.repo.SaveUsers(ctx, profile, append(users, stored)); err != nil {
		return models.User{}, err
	}
	session := user.SessionCopy()
	if err := m.repo.SetCurrentUser(ctx, profile, session); err != nil {
		return models.User{}, err
	}

	level.Info(m.logger).Log("msg", "user registered", "profile", profile, "user_id", user.ID, "role", user.Role)
	return session, nil
}

func (m *SessionManager) validateSignUp(in SignUpInput) (models.User, error) {
	u := models.User{
		ID:             strings.TrimSpace(in.ID),
		FullName:       strings.TrimSpace(in.FullName),
		Username:       strings.TrimSpace(in.Username),
		Email:          strings.TrimSpace(in.Email),
		Phone:          utils.NormalizePhone(in.Phone),
		Gender:         strings.TrimSpace(in.Gender),
		DOB:            strings.TrimSpace(in.DOB),
		Password:       in.Password,
		MedicalLicense: strings.TrimSpace(in.MedicalLicense),
		Specialization: strings.TrimSpace(in.Specialization),
		Facility:       strings.TrimSpace(in.Facility),
	}

	required := []struct{ field, value string }{
		{"id", u.ID},
		{"fullName", u.FullName},
		{"username", u.Username},
		{"email", u.Email},
		{"phone", u.Phone},
		{"gender", u.Gender},
		{"dob", u.DOB},
		{"password", u.Password},
	}
	for _, r := range required {
		if r.value == "" {
			return u, NewValidationError(r.field, r.field+" is required")
		}
	}

	if !utils.ValidEmail(u.Email) {
		return u, NewValidationError("email", "email address is not valid")
	}
	if !utils.ValidPhone(u.Phone) {
		return u, NewValidationError("phone", "phone number is not valid")
	}
	if in.Password != in.ConfirmPassword {
		return u, NewValidationError("confirmPassword", "passwords do not match")
	}
	if !in.AcceptedTerms {
		return u, NewValidationError("terms", "the terms of service must be accepted")
	}

	role, ok := models.ParseRole(in.Role)
	if !ok || role == models.RoleAdmin {
		return u, NewValidationError("role", "role is not available for sign up")
	}
	u.Role = role
	return u, nil
}

func (m *SessionManager) checkUnique(users []models.User, u models.User) error {
	if strings.EqualFold(u.Username, m.admin.Username) || strings.EqualFold(u.Username, DefaultAdminUsername) {
		return NewDuplicateUserError("username", "username is reserved")
	}
	for _, existing := range users {
		switch {
		case existing.ID == u.ID:
			return NewDuplicateUserError("id", "a user with this ID already exists")
		case existing.Username == u.Username:
			return NewDuplicateUserError("username", "a user with this username already exists")
		case existing.Email == u.Email:
			return NewDuplicateUserError("email", "a user with this email already exists")
		case existing.Phone == u.Phone:
			return NewDuplicateUserError("phone", "a user with this phone number already exists")
		}
	}
	return nil
}

// SignIn checks the administrator first, then the users list in order.
func (m *SessionManager) SignIn(ctx context.Context, profile string, creds Credentials) (models.User, error) {
	value := strings.TrimSpace(creds.Value)
	if value == "" {
		return models.User{}, NewValidationError("identifier", "an identifier is required")
	}
	if creds.Password == "" {
		return models.User{}, NewValidationError("password", "password is required")
	}

	if value == m.admin.Username && utils.CheckPassword(creds.Password, m.admin.Password) {
		session := m.admin.sessionUser()
		if err := m.repo.SetCurrentUser(ctx, profile, session); err != nil {
			return models.User{}, err
		}
		level.Info(m.logger).Log("msg", "administrator signed in", "profile", profile)
		return session, nil
	}

	field := creds.Field
	if field == "" {
		field = FieldEmail
	}
	users, err := m.repo.Users(ctx, profile)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if identifierOf(u, field) != normalizeIdentifier(field, value) {
			continue
		}
		if !utils.CheckPassword(creds.Password, u.Password) {
			continue
		}
		session := u.SessionCopy()
		if err := m.repo.SetCurrentUser(ctx, profile, session); err != nil {
			return models.User{}, err
		}
		level.Info(m.logger).Log("msg", "user signed in", "profile", profile, "user_id", u.ID)
		return session, nil
	}

	level.Debug(m.logger).Log("msg", "sign in rejected", "profile", profile, "field", field)
	return models.User{}, NewInvalidCredentialsError("invalid credentials")
}

func identifierOf(u models.User, field IdentifierField) string {
	switch field {
	case FieldID:
		return u.ID
	case FieldUsername:
		return u.Username
	case FieldPhone:
		return u.Phone
	default:
		return u.Email
	}
}

func normalizeIdentifier(field IdentifierField, value string) string {
	if field == FieldPhone {
		return utils.NormalizePhone(value)
	}
	return value
}

// SignOut removes the session. Signing out twice is not an error.
func (m *SessionManager) SignOut(ctx context.Context, profile string) error {
	return m.repo.ClearCurrentUser(ctx, profile)
}

// CurrentUser returns the session record, or nil when nobody is signed in.
func (m *SessionManager) CurrentUser(ctx context.Context, profile string) (*models.User, error) {
	return m.repo.CurrentUser(ctx, profile)
}

// IsAdmin is true for the admin role and for the administrator username.
func IsAdmin(u *models.User) bool {
	return u != nil && (u.Role == models.RoleAdmin || u.Username == DefaultAdminUsername)
}

// profileLocks serialises read-modify-write cycles on one profile.
type profileLocks struct {
	mu sync.Mutex
	m  map[string]*profileLock
}

type profileLock struct {
	mu   sync.Mutex
	refs int
}

func newProfileLocks() *profileLocks {
	return &profileLocks{m: make(map[string]*profileLock)}
}

func (l *profileLocks) lock(profile string) func() {
	l.mu.Lock()
	e, ok := l.m[profile]
	if !ok {
		e = &profileLock{}
		l.m[profile] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, profile)
		}
		l.mu.Unlock()
	}
}
