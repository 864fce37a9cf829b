package authsvc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/riskibarqy/community-league/internal/platform/resilience"
	"github.com/riskibarqy/community-league/internal/usecase"
	"github.com/stretchr/testify/require"
)

func TestIntrospectClient_ForwardsBearerAndParsesUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/auth/v1/user" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-abc" {
			t.Errorf("unexpected authorization header: %s", got)
		}
		if got := r.Header.Get("apikey"); got != "anon-key" {
			t.Errorf("unexpected apikey header: %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"user-123","email":"admin@league.test","role":"authenticated"}`))
	}))
	defer srv.Close()

	client := NewIntrospectClient(srv.Client(), IntrospectConfig{
		BaseURL:        srv.URL + "/",
		UserPath:       "auth/v1/user",
		APIKey:         "anon-key",
		CircuitBreaker: resilience.BreakerConfig{Enabled: false},
	}, logging.NewNop())

	principal, err := client.VerifyAccessToken(context.Background(), " token-abc ")
	require.NoError(t, err)
	require.Equal(t, "user-123", principal.UserID)
	require.Equal(t, "admin@league.test", principal.Email)
}

func TestIntrospectClient_RejectedToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewIntrospectClient(srv.Client(), IntrospectConfig{BaseURL: srv.URL, UserPath: "/user"}, logging.NewNop())

	_, err := client.VerifyAccessToken(context.Background(), "bad")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestIntrospectClient_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewIntrospectClient(nil, IntrospectConfig{BaseURL: "http://127.0.0.1:1"}, logging.NewNop())
	_, err := client.VerifyAccessToken(context.Background(), "")
	require.ErrorIs(t, err, usecase.ErrUnauthorized)
}

func TestIntrospectClient_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewIntrospectClient(srv.Client(), IntrospectConfig{
		BaseURL:  srv.URL,
		UserPath: "/user",
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("call %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	require.Equal(t, int32(2), calls.Load(), "third call is short-circuited")
}

func TestIntrospectClient_UnauthorizedDoesNotTripCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewIntrospectClient(srv.Client(), IntrospectConfig{
		BaseURL:        srv.URL,
		CircuitBreaker: resilience.BreakerConfig{Enabled: true, FailureThreshold: 1},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		require.ErrorIs(t, err, usecase.ErrUnauthorized)
	}
	require.Equal(t, int32(3), calls.Load())
}
