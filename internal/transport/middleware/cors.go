package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/etimoloji/clauson-dictionary/internal/config"
)

// exposedHeaders are readable by browser clients on cross-origin responses.
const exposedHeaders = "X-Request-Id, Retry-After"

// CORS returns middleware that handles Cross-Origin Resource Sharing for
// the browsing UI. Preflight requests are answered directly with 204.
//
// A "*" entry allows any origin. Without credentials the response carries
// the literal "*"; with credentials the request origin is echoed, since
// browsers reject "*" on credentialed requests.
func CORS(cfg config.CORSConfig) Middleware {
	origins := parseOrigins(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); origin != "" {
				if allow, ok := origins.allow(origin, cfg.AllowCredentials); ok {
					h.Set("Access-Control-Allow-Origin", allow)
					h.Set("Access-Control-Expose-Headers", exposedHeaders)
					if cfg.AllowCredentials {
						h.Set("Access-Control-Allow-Credentials", "true")
					}
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type originSet struct {
	any   bool
	exact map[string]struct{}
}

func parseOrigins(list string) originSet {
	set := originSet{exact: make(map[string]struct{})}
	for _, o := range strings.Split(list, ",") {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			set.any = true
		default:
			set.exact[o] = struct{}{}
		}
	}
	return set
}

// allow returns the Access-Control-Allow-Origin value for origin.
func (s originSet) allow(origin string, credentials bool) (string, bool) {
	if _, ok := s.exact[origin]; ok {
		return origin, true
	}
	if !s.any {
		return "", false
	}
	if credentials {
		return origin, true
	}
	return "*", true
}
