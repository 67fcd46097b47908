// Package authmw provides HTTP middleware for bearer token authentication.
package authmw

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Bearer returns middleware that validates the Authorization header carries
// a bearer token matching the expected value. The scheme is matched
// case-insensitively per RFC 6750 and the token comparison is constant time.
func Bearer(token string) func(http.Handler) http.Handler {
	expected := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, credentials, found := strings.Cut(r.Header.Get("Authorization"), " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="skywarn"`)
				http.Error(w, `{"error":"missing or malformed authorization header"}`, http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(credentials), expected) != 1 {
				w.Header().Set("WWW-Authenticate", `Bearer realm="skywarn", error="invalid_token"`)
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
