package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Mohamed-Oulkadi/food-delivery-microservices/internal/gateway"
)

func TestClient_Do_SendsJSONAndDecodes(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/things", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.Equal(t, "k-1", r.Header.Get("Idempotency-Key"))

		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, 1, in["a"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"b":2}`))
	}))
	defer srv.Close()

	c := gateway.NewClient(srv.URL+"/", time.Second)
	var out map[string]int
	h := http.Header{}
	h.Set("Idempotency-Key", "k-1")
	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/api/things", h, map[string]int{"a": 1}, &out))
	require.Equal(t, 2, out["b"])
}

func TestClient_WithCaller_SetsHeader(t *testing.T) {
	t.Parallel()

	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(gateway.CallerHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, gateway.NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))
	require.NoError(t, gateway.NewClient(srv.URL, time.Second).WithCaller("service-order").
		Do(context.Background(), http.MethodGet, "/x", nil, nil, nil))
	require.Equal(t, []string{"", "service-order"}, got)
}

func TestClient_Do_NonSuccessIsStatusError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := gateway.NewClient(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)

	var se *gateway.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusServiceUnavailable, se.Code)
	require.Equal(t, "nope", se.Body)
	require.True(t, gateway.IsRetryable(err))
}

func TestClient_Do_ConnectionRefusedIsRetryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := gateway.NewClient(url, time.Second).Do(context.Background(), http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	require.True(t, gateway.IsRetryable(err))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	var _ net.Error = timeoutErr{}

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"net", timeoutErr{}, true},
		{"plain", errors.New("decode"), false},
		{"400", &gateway.StatusError{Code: http.StatusBadRequest}, false},
		{"404", &gateway.StatusError{Code: http.StatusNotFound}, false},
		{"409", &gateway.StatusError{Code: http.StatusConflict}, false},
		{"408", &gateway.StatusError{Code: http.StatusRequestTimeout}, true},
		{"429", &gateway.StatusError{Code: http.StatusTooManyRequests}, true},
		{"502", &gateway.StatusError{Code: http.StatusBadGateway}, true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, gateway.IsRetryable(tc.err))
		})
	}
}
