package authsvc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/community-league/internal/domain/user"
	"github.com/riskibarqy/community-league/internal/platform/logging"
	"github.com/riskibarqy/community-league/internal/platform/resilience"
	"github.com/riskibarqy/community-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

var errAuthTransient = crerr.New("auth service transient failure")

type IntrospectConfig struct {
	BaseURL        string
	UserPath       string
	APIKey         string
	Timeout        time.Duration
	CircuitBreaker resilience.BreakerConfig
}

// IntrospectClient asks the hosted auth service who owns a bearer token by
// forwarding it to the user endpoint.
type IntrospectClient struct {
	httpClient *http.Client
	userURL    string
	apiKey     string
	logger     *logging.Logger
	breaker    *resilience.Breaker
}

func NewIntrospectClient(httpClient *http.Client, cfg IntrospectConfig, logger *logging.Logger) *IntrospectClient {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &IntrospectClient{
		httpClient: httpClient,
		userURL:    buildURL(cfg.BaseURL, cfg.UserPath),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
	}
}

func (c *IntrospectClient) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	var principal user.Principal
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		var callErr error
		principal, callErr = c.fetchUser(ctx, token)
		return callErr
	}, isCircuitFailure)
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "auth circuit breaker rejected request", "state", c.breaker.State())
		return user.Principal{}, fmt.Errorf("%w: auth service circuit open", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return user.Principal{}, err
	}
	return principal, nil
}

func (c *IntrospectClient) fetchUser(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create auth user request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.Mark(
			fmt.Errorf("%w: request auth user: %v", usecase.ErrDependencyUnavailable, err),
			errAuthTransient,
		)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, 1<<20)); err != nil {
		return user.Principal{}, crerr.Mark(crerr.Wrap(err, "read auth user response"), errAuthTransient)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected by auth service", usecase.ErrUnauthorized)
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		c.logger.WarnContext(ctx, "auth user lookup failed", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Mark(
			fmt.Errorf("%w: auth service status %d", usecase.ErrDependencyUnavailable, resp.StatusCode),
			errAuthTransient,
		)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, crerr.Newf("auth user lookup failed with status %d", resp.StatusCode)
	}

	var decoded userResponse
	if err := sonic.Unmarshal(buf.B, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(err, "unmarshal auth user response")
	}

	userID := strings.TrimSpace(decoded.ID)
	if userID == "" {
		userID = strings.TrimSpace(decoded.UserID)
	}
	if userID == "" {
		return user.Principal{}, fmt.Errorf("%w: auth user response has no id", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: userID,
		Email:  decoded.Email,
		Role:   decoded.Role,
	}, nil
}

type userResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errAuthTransient)
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return baseURL + path
}
