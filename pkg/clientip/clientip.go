package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the address credential throttling is keyed on.
//
// Without trustProxy only r.RemoteAddr counts, which is right when browsers
// reach the server directly. With trustProxy the server is assumed to sit
// behind exactly one reverse proxy: the last X-Forwarded-For entry (the one
// that proxy appended) wins, then X-Real-IP, then RemoteAddr.
func RealClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			parts := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(parts[len(parts)-1]); net.ParseIP(ip) != nil {
				return ip
			}
		}
		if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
