// Package pprofserver exposes the runtime profiler on the service router.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"runtime"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

// Config stores pprof settings. Remote callers need basic auth, loopback is trusted.
type Config struct {
	Enabled bool
	User    string
	Pass    string
	// BlockRate and MutexFraction switch on the block and mutex profiles, which show
	// waits on driver locks and outbound queues. Zero leaves them off.
	BlockRate     int
	MutexFraction int
}

// Mount serves chi's profiler under /debug (pprof and expvar) when enabled.
func Mount(r chi.Router, cfg Config, logger logx.Logger) {
	if !cfg.Enabled {
		return
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if cfg.BlockRate > 0 {
		runtime.SetBlockProfileRate(cfg.BlockRate)
	}
	if cfg.MutexFraction > 0 {
		runtime.SetMutexProfileFraction(cfg.MutexFraction)
	}
	r.With(guard(cfg, logger)).Mount("/debug", middleware.Profiler())
}

// guard lets loopback through and asks everyone else for the configured credentials.
func guard(cfg Config, logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isLoopback(r.RemoteAddr) || cfg.authorized(r) {
				next.ServeHTTP(w, r)
				return
			}
			logger.Warn("pprof access denied",
				logx.String("remote", r.RemoteAddr),
				logx.String("path", r.URL.Path),
			)
			w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		})
	}
}

func (c Config) authorized(r *http.Request) bool {
	if c.User == "" || c.Pass == "" {
		return false
	}
	u, p, ok := r.BasicAuth()
	return ok && secureEq(u, c.User) && secureEq(p, c.Pass)
}

func secureEq(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
