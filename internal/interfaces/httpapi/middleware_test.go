package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/community-league/internal/domain/user"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	const site = "https://league.example.org"

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		wantVary   bool
	}{
		{name: "listed origin", allowed: []string{" " + site + " ", "https://admin.example.org"}, method: http.MethodGet, origin: site, wantStatus: http.StatusOK, wantOrigin: site, wantVary: true},
		{name: "unlisted origin", allowed: []string{"https://admin.example.org"}, method: http.MethodGet, origin: site, wantStatus: http.StatusOK},
		{name: "wildcard preflight", allowed: []string{"*"}, method: http.MethodOptions, origin: site, wantStatus: http.StatusNoContent, wantOrigin: "*"},
		{name: "same origin request", allowed: []string{site}, method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/playoffs/bracket", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			require.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tt.wantVary, rec.Header().Get("Vary") == "Origin")
			if tt.wantOrigin != "" {
				require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
			}
		})
	}
}

func TestRequireAuth_StoresPrincipal(t *testing.T) {
	var got user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = user.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAuth(staticVerifier{}, next)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/recompute", nil)
	req.Header.Set("Authorization", "bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "admin-1", got.UserID)

	for _, header := range []string{"", "Basic " + adminToken, "Bearer ", "Bearer wrong"} {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/recompute", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/readyz", " /livez ", "/metrics"} {
		require.False(t, shouldTraceRequest(path), path)
	}
	for _, path := range []string{"/v1/standings", "/v1/admin/games", "/docs"} {
		require.True(t, shouldTraceRequest(path), path)
	}
}

func TestStartSpan_OnlyHandlersUnderTracedRequests(t *testing.T) {
	traced := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	}))

	ctx, span := startSpan(context.Background(), "httpapi.Handler.GetBracket")
	require.Equal(t, context.Background(), ctx)
	require.Equal(t, noopSpan, span)

	ctx, span = startSpan(traced, "httpapi.writeJSON")
	require.Equal(t, traced, ctx)
	require.Equal(t, noopSpan, span)

	ctx, _ = startSpan(traced, "httpapi.Handler.GetBracket")
	require.NotEqual(t, traced, ctx)
	require.Equal(t, trace.TraceID{0x01}, trace.SpanContextFromContext(ctx).TraceID())
}
