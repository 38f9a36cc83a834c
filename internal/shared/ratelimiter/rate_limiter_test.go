package ratelimiter

import (
	"testing"
	"time"
)

func TestRateLimiter_NoWaitUnderLimit(t *testing.T) {
	rl := NewRateLimiter(5, time.Second)

	start := time.Now()
	for i := 0; i < 5; i++ {
		rl.WaitIfNeeded()
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("calls under the limit should not wait, took %s", elapsed)
	}
}

func TestRateLimiter_WaitsWhenLimitExceeded(t *testing.T) {
	interval := 200 * time.Millisecond
	rl := NewRateLimiter(2, interval)

	rl.WaitIfNeeded()
	rl.WaitIfNeeded()

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("the call over the limit should wait out the window, waited only %s", elapsed)
	}
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	rl := NewRateLimiter(1, interval)

	rl.WaitIfNeeded()
	time.Sleep(interval + 10*time.Millisecond)

	start := time.Now()
	rl.WaitIfNeeded()
	if elapsed := time.Since(start); elapsed > 25*time.Millisecond {
		t.Errorf("a new window should not wait, took %s", elapsed)
	}
}
