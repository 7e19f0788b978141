package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const profileIssuer = "dhrms"

// ErrInvalidProfileToken is returned for tokens that fail signature or claim checks.
var ErrInvalidProfileToken = errors.New("invalid profile token")

// ProfileTokens signs the cookie that names a browser profile's namespace.
// Tokens carry no expiry; the namespace lives as long as the cookie.
type ProfileTokens struct {
	secret []byte
	now    func() time.Time
}

func NewProfileTokens(secret string) *ProfileTokens {
	return &ProfileTokens{secret: []byte(secret), now: time.Now}
}

// Issue creates a new profile id and its signed token.
func (p *ProfileTokens) Issue() (profileID, token string, err error) {
	profileID = uuid.NewString()
	claims := jwt.RegisteredClaims{
		Issuer:   profileIssuer,
		Subject:  profileID,
		IssuedAt: jwt.NewNumericDate(p.now().UTC()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign profile token: %w", err)
	}
	return profileID, signed, nil
}

// Parse verifies token and returns the profile id it carries.
func (p *ProfileTokens) Parse(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidProfileToken
	}
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidProfileToken
		}
		return p.secret, nil
	}, jwt.WithIssuer(profileIssuer))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidProfileToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidProfileToken
	}
	return claims.Subject, nil
}
