package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/idempotency"
	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/logx"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string]idempotency.Response
	getErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]idempotency.Response{}} }

func (s *memStore) Get(_ context.Context, scope, key string) (*idempotency.Response, bool, error) {
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, ok := s.data[scope+"|"+key]
	if !ok {
		return nil, false, nil
	}
	return &resp, true, nil
}

func (s *memStore) Save(_ context.Context, scope, key string, resp idempotency.Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[scope+"|"+key]; !ok {
		s.data[scope+"|"+key] = resp
	}
	return nil
}

func countingHandler(status int, body string) (http.Handler, *int) {
	calls := 0
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}), &calls
}

func postWithKey(key string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/deliveries", strings.NewReader(`{"orderId":7}`))
	if key != "" {
		r.Header.Set(IdempotencyKeyHeader, key)
	}
	return r
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	t.Parallel()

	replays := prometheus.NewCounter(prometheus.CounterOpts{Name: "replays", Help: "replays"})
	next, calls := countingHandler(http.StatusCreated, `{"id":1}`)
	h := Idempotency(logx.Nop(), newMemStore(), replays)(next)

	first := httptest.NewRecorder()
	h.ServeHTTP(first, postWithKey("order-7"))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, postWithKey("order-7"))

	require.Equal(t, 1, *calls)
	require.Equal(t, http.StatusCreated, second.Code)
	require.JSONEq(t, `{"id":1}`, second.Body.String())
	require.Equal(t, "application/json", second.Header().Get("Content-Type"))
	require.Equal(t, "true", second.Header().Get("Idempotent-Replayed"))
	require.Equal(t, float64(1), testutil.ToFloat64(replays))
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	t.Parallel()

	next, calls := countingHandler(http.StatusConflict, `{"error":"driver busy"}`)
	h := Idempotency(logx.Nop(), newMemStore(), nil)(next)

	h.ServeHTTP(httptest.NewRecorder(), postWithKey("k"))
	h.ServeHTTP(httptest.NewRecorder(), postWithKey("k"))

	require.Equal(t, 2, *calls)
}

func TestIdempotency_PassThrough(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  func() *http.Request
	}{
		{name: "no key", req: func() *http.Request { return postWithKey("") }},
		{name: "read request", req: func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/api/deliveries", nil)
			r.Header.Set(IdempotencyKeyHeader, "k")
			return r
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			next, calls := countingHandler(http.StatusOK, `{}`)
			h := Idempotency(logx.Nop(), newMemStore(), nil)(next)

			h.ServeHTTP(httptest.NewRecorder(), tt.req())
			h.ServeHTTP(httptest.NewRecorder(), tt.req())

			require.Equal(t, 2, *calls)
		})
	}
}

func TestIdempotency_StoreErrorFailsOpen(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.getErr = errors.New("redis down")
	next, calls := countingHandler(http.StatusCreated, `{"id":1}`)
	h := Idempotency(nil, store, nil)(next)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, postWithKey("k"))

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, *calls)
}

func TestIdempotency_ScopeIsPerPath(t *testing.T) {
	t.Parallel()

	next, calls := countingHandler(http.StatusOK, `{}`)
	h := Idempotency(logx.Nop(), newMemStore(), nil)(next)

	h.ServeHTTP(httptest.NewRecorder(), postWithKey("same"))
	other := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	other.Header.Set(IdempotencyKeyHeader, "same")
	h.ServeHTTP(httptest.NewRecorder(), other)

	require.Equal(t, 2, *calls)
}
