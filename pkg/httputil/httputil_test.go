package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient")}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry() returned error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("permanent")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	transient := errors.New("still down")
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return &RetryableError{Err: transient}
	})

	if !errors.Is(err, transient) {
		t.Errorf("Retry() error = %v, want %v", err, transient)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return &RetryableError{Err: errors.New("transient")}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if _, ok := c.Get("https://example.com/games"); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	want := []byte("<html>fixtures</html>")
	if err := c.Set("https://example.com/games", want); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}

	got, ok := c.Get("https://example.com/games")
	if !ok {
		t.Fatal("Get() after Set() reported a miss")
	}
	if string(got) != string(want) {
		t.Errorf("Get() = %q, want %q", got, want)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Nanosecond)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if err := c.Set("key", []byte("data")); err != nil {
		t.Fatalf("Set() returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("Get() reported a hit for an expired entry")
	}
}

func TestCacheKeysDoNotCollide(t *testing.T) {
	c, err := NewCache(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if err := c.Set("a", []byte("one")); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("b", []byte("two")); err != nil {
		t.Fatal(err)
	}

	got, _ := c.Get("a")
	if string(got) != "one" {
		t.Errorf("Get(a) = %q, want %q", got, "one")
	}
}
