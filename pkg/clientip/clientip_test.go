package clientip

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRealClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr with port", remoteAddr: "203.0.113.7:51234", want: "203.0.113.7"},
		{name: "remote addr without port", remoteAddr: "203.0.113.7", want: "203.0.113.7"},
		{name: "ipv6 remote addr", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{
			name:       "forwarding headers ignored by default",
			remoteAddr: "10.0.0.2:80",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4", "X-Real-IP": "198.51.100.5"},
			want:       "10.0.0.2",
		},
		{
			name:       "last forwarded hop behind a trusted proxy",
			remoteAddr: "10.0.0.2:80",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4, 198.51.100.4"},
			trustProxy: true,
			want:       "198.51.100.4",
		},
		{
			name:       "real ip behind a trusted proxy",
			remoteAddr: "10.0.0.2:80",
			headers:    map[string]string{"X-Real-IP": "198.51.100.5"},
			trustProxy: true,
			want:       "198.51.100.5",
		},
		{
			name:       "garbage headers fall back to remote addr",
			remoteAddr: "10.0.0.2:80",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip", "X-Real-IP": "nope"},
			trustProxy: true,
			want:       "10.0.0.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/signin.html", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, RealClientIP(r, tt.trustProxy))
		})
	}
}
