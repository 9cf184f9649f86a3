package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MaxAttempts != 4 {
		t.Errorf("expected MaxAttempts=4, got %d", cfg.MaxAttempts)
	}
	if cfg.InitialDelay != 100*time.Millisecond {
		t.Errorf("expected InitialDelay=100ms, got %v", cfg.InitialDelay)
	}
	if cfg.Multiplier != 2.0 {
		t.Errorf("expected Multiplier=2.0, got %f", cfg.Multiplier)
	}
}

func TestDo_Success(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), Immediate(5), func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), Immediate(5), func() error {
		callCount++
		if callCount < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("expected 3 calls, got %d", callCount)
	}
}

func TestDo_AttemptsBounded(t *testing.T) {
	wantErr := errors.New("always fails")
	callCount := 0
	err := Do(context.Background(), Immediate(10), func() error {
		callCount++
		return wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("expected last error, got %v", err)
	}
	if callCount != 10 {
		t.Errorf("expected exactly 10 calls, got %d", callCount)
	}
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	got, err := DoWithResult(context.Background(), Immediate(3), func() (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

type permanentError struct{}

func (permanentError) Error() string     { return "permanent" }
func (permanentError) IsRetryable() bool { return false }

func TestDo_PermanentErrorShortCircuits(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), Immediate(10), func() error {
		callCount++
		return permanentError{}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if callCount != 1 {
		t.Errorf("expected 1 call for permanent error, got %d", callCount)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &Config{
		MaxAttempts:  5,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, cfg, func() error {
		return errors.New("transient")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
