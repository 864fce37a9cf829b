package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntriesAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 12, 20, 30, 0, 0, time.UTC)
	store := NewStore(time.Minute)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "standings:table", "rows")
	if _, ok := store.Get(context.Background(), "standings:table"); !ok {
		t.Fatalf("expected fresh entry to be returned")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "standings:table"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
	if got := store.Len(); got != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	store.Set(ctx, "team:list", 1)
	store.Set(ctx, "team:id:a", 2)
	store.Set(ctx, "game:list", 3)
	store.Set(ctx, "roster:list", 4)

	store.DeletePrefix(ctx, "team:", "game:")

	if got := store.Len(); got != 1 {
		t.Fatalf("expected one surviving entry, got %d", got)
	}
	if _, ok := store.Get(ctx, "roster:list"); !ok {
		t.Fatalf("expected roster entry to survive")
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("db down")
		}
		return "ok", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v != "ok" {
		t.Fatalf("unexpected value %v", v)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_InvalidationDuringLoadIsNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return "stale", nil
		}
		return "fresh", nil
	}

	done := make(chan any, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "team:list", loader)
		done <- v
	}()

	<-started
	store.DeletePrefix(ctx, "team:")

	// A caller arriving after the invalidation must not join the stale load.
	v, err := store.GetOrLoad(ctx, "team:list", loader)
	if err != nil {
		t.Fatalf("load after invalidation: %v", err)
	}
	if v != "fresh" {
		t.Fatalf("expected fresh value, got %v", v)
	}

	close(release)
	if got := <-done; got != "stale" {
		t.Fatalf("in-flight caller should still get its own result, got %v", got)
	}

	cached, ok := store.Get(ctx, "team:list")
	if !ok || cached != "fresh" {
		t.Fatalf("expected fresh value to stay cached, got %v (ok=%v)", cached, ok)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}
