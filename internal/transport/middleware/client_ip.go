package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/etimoloji/clauson-dictionary/pkg/ctxutil"
)

// ClientIP returns middleware that resolves the caller address and stores
// it in the context. With trustProxy set, the first X-Forwarded-For hop
// wins over the socket peer.
func ClientIP(trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxutil.WithClientIP(r.Context(), resolveClientIP(r, trustProxy))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// clientIP prefers the address resolved by ClientIP and falls back to the
// socket peer when the middleware is not installed.
func clientIP(r *http.Request) string {
	if ip := ctxutil.ClientIPFromCtx(r.Context()); ip != "" {
		return ip
	}
	return resolveClientIP(r, false)
}
