package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errUpstream = errors.New("connection reset")

func fail(context.Context) error { return errUpstream }
func pass(context.Context) error { return nil }

func newTestBreaker(cfg BreakerConfig) (*Breaker, *time.Time) {
	cfg.Enabled = true
	b := NewBreaker(cfg)
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensAfterThresholdAndRecovers(t *testing.T) {
	b, now := newTestBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail, nil)
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}
	_ = b.Execute(ctx, fail, nil)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Execute(ctx, pass, nil); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open once window elapsed, got %s", state)
	}
	if err := b.Execute(ctx, pass, nil); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful probe, got %s", state)
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, now := newTestBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail, nil)
	*now = now.Add(2 * time.Second)
	if err := b.Execute(ctx, fail, nil); !errors.Is(err, errUpstream) {
		t.Fatalf("expected probe to run and fail, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopened breaker, got %s", state)
	}
}

func TestBreaker_IgnoresNonFailureErrors(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute})
	errDenied := errors.New("token denied")
	isFailure := func(err error) bool { return errors.Is(err, errUpstream) }
	ctx := context.Background()

	err := b.Execute(ctx, func(context.Context) error { return errDenied }, isFailure)
	if !errors.Is(err, errDenied) {
		t.Fatalf("expected denied error to pass through, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after non-failure error, got %s", state)
	}

	_ = b.Execute(ctx, fail, isFailure)
	called := false
	err = b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	}, isFailure)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if called {
		t.Fatalf("expected fn not to run while circuit is open")
	}
}

func TestBreaker_DisabledAlwaysRuns(t *testing.T) {
	b := NewBreaker(BreakerConfig{FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		if err := b.Execute(context.Background(), fail, nil); !errors.Is(err, errUpstream) {
			t.Fatalf("call %d: expected upstream error, got %v", i, err)
		}
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected disabled breaker to stay closed, got %s", state)
	}
}

func TestBreakerConfig_Defaults(t *testing.T) {
	got := BreakerConfig{}.withDefaults()
	if got.FailureThreshold != 5 || got.OpenTimeout != 15*time.Second || got.HalfOpenMaxReq != 2 {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}
