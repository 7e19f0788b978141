package middleware

import (
	"context"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// ProfileCookie carries the signed id of the browser profile's namespace.
const ProfileCookie = "dhrms_profile"

const profileCookieMaxAge = 365 * 24 * 60 * 60

type profileKey struct{}

// ProfileIssuer creates and verifies profile tokens.
type ProfileIssuer interface {
	Issue() (profileID, token string, err error)
	Parse(token string) (string, error)
}

// Profiles resolves the profile namespace of every request, issuing a new
// profile cookie when the request has none or an invalid one.
func Profiles(tokens ProfileIssuer, secure bool, logger log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(ProfileCookie); err == nil {
				if id, err := tokens.Parse(c.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), id)))
					return
				}
				level.Debug(logger).Log("msg", "discarding invalid profile cookie")
			}

			id, token, err := tokens.Issue()
			if err != nil {
				level.Error(logger).Log("msg", "failed to issue profile token", "err", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     ProfileCookie,
				Value:    token,
				Path:     "/",
				MaxAge:   profileCookieMaxAge,
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithProfile(r.Context(), id)))
		})
	}
}

func WithProfile(ctx context.Context, profileID string) context.Context {
	return context.WithValue(ctx, profileKey{}, profileID)
}

// ProfileFromContext returns "" outside the Profiles middleware.
func ProfileFromContext(ctx context.Context) string {
	id, _ := ctx.Value(profileKey{}).(string)
	return id
}
