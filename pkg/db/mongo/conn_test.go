package mongo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mongodriver "go.mongodb.org/mongo-driver/mongo"

	apperrors "eventdesk/pkg/errors"
)

func TestAcquire_MissingURI(t *testing.T) {
	cache := NewCache(nil, "", time.Second)

	_, err := cache.Acquire(context.Background())
	if err == nil {
		t.Fatal("expected error for missing URI")
	}

	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeConfiguration {
		t.Errorf("expected code %s, got %s", apperrors.CodeConfiguration, appErr.Code)
	}
}

func TestAcquire_ConcurrentCallersShareOneAttempt(t *testing.T) {
	var attempts int32
	shared := &mongodriver.Client{}

	cache := NewCache(nil, "mongodb://localhost:27017", time.Second)
	cache.connect = func(ctx context.Context, uri string, timeout time.Duration) (*mongodriver.Client, error) {
		atomic.AddInt32(&attempts, 1)
		// Hold the flight open long enough for every caller to join it.
		time.Sleep(50 * time.Millisecond)
		return shared, nil
	}

	const callers = 10
	results := make([]*mongodriver.Client, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = cache.Acquire(context.Background())
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected exactly 1 connection attempt, got %d", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: unexpected error: %v", i, errs[i])
		}
		if results[i] != shared {
			t.Errorf("caller %d: expected the shared client handle", i)
		}
	}
}

func TestAcquire_CachedAcrossCalls(t *testing.T) {
	var attempts int32
	shared := &mongodriver.Client{}

	cache := NewCache(nil, "mongodb://localhost:27017", time.Second)
	cache.connect = func(ctx context.Context, uri string, timeout time.Duration) (*mongodriver.Client, error) {
		atomic.AddInt32(&attempts, 1)
		return shared, nil
	}

	for i := 0; i < 5; i++ {
		client, err := cache.Acquire(context.Background())
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
		if client != shared {
			t.Fatalf("call %d: expected the cached handle", i)
		}
	}

	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("expected 1 connection attempt across repeated calls, got %d", got)
	}
}

func TestAcquire_FailureClearsStateForRetry(t *testing.T) {
	var attempts int32
	shared := &mongodriver.Client{}
	dialErr := errors.New("connection refused")

	cache := NewCache(nil, "mongodb://localhost:27017", time.Second)
	cache.connect = func(ctx context.Context, uri string, timeout time.Duration) (*mongodriver.Client, error) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			return nil, dialErr
		}
		return shared, nil
	}

	if _, err := cache.Acquire(context.Background()); !errors.Is(err, dialErr) {
		t.Fatalf("expected dial error on first attempt, got %v", err)
	}

	client, err := cache.Acquire(context.Background())
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if client != shared {
		t.Error("expected the handle from the retried attempt")
	}
	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Errorf("expected 2 attempts (failure then retry), got %d", got)
	}
}
