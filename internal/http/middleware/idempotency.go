package middleware

import (
	"bytes"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/idempotency"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

// IdempotencyKeyHeader is the header a client sets to make a mutation safe to repeat.
const IdempotencyKeyHeader = "Idempotency-Key"

// Idempotency replays the stored answer for a repeated mutating request with the same key.
// Store failures never block the request.
func Idempotency(logger logx.Logger, store idempotency.Store, replays prometheus.Counter) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logx.Nop()
	}
	if store == nil {
		store = idempotency.NopStore{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" || !mutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			scope := r.Method + " " + r.URL.Path

			cached, found, err := store.Get(ctx, scope, key)
			if err != nil {
				logger.Warn("idempotency check failed",
					logx.String("req_id", chimw.GetReqID(ctx)),
					logx.String("key", key),
					logx.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if found {
				if replays != nil {
					replays.Inc()
				}
				logger.Debug("idempotent replay",
					logx.String("req_id", chimw.GetReqID(ctx)),
					logx.String("key", key),
					logx.String("scope", scope),
				)
				if cached.ContentType != "" {
					w.Header().Set("Content-Type", cached.ContentType)
				}
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			}

			var body bytes.Buffer
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Tee(&body)
			next.ServeHTTP(ww, r)

			// кешируем только успех
			status := ww.Status()
			if status < 200 || status >= 300 {
				return
			}
			resp := idempotency.Response{
				Status:      status,
				ContentType: ww.Header().Get("Content-Type"),
				Body:        body.Bytes(),
			}
			if err := store.Save(ctx, scope, key, resp); err != nil {
				logger.Warn("idempotency store failed",
					logx.String("req_id", chimw.GetReqID(ctx)),
					logx.String("key", key),
					logx.Err(err),
				)
			}
		})
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}
