package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "zero-shot"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different key should also work
	if err := limiter.Wait(ctx, "clause"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_NilIsUnlimited(t *testing.T) {
	var limiter *Limiter
	if err := limiter.Wait(context.Background(), "anything"); err != nil {
		t.Errorf("nil limiter should not fail: %v", err)
	}
	if !limiter.Allow("anything") {
		t.Error("nil limiter should always allow")
	}
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("oracle") {
			t.Fatalf("request %d rejected by unlimited limiter", i)
		}
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	key := "openai"

	// First request ok
	if err := limiter.Wait(ctx, key); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Since we used burst 1, token is consumed
	if limiter.Allow(key) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Different key should be allowed
	if !limiter.Allow("anthropic") {
		t.Errorf("expected allow for other key")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	_ = limiter.Wait(context.Background(), "slow")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, "slow"); err == nil {
		t.Error("expected error when context expires before a token is available")
	}
}

func TestLimiter_WaitURL(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()

	if err := limiter.WaitURL(ctx, "http://example.com/contract.pdf"); err != nil {
		t.Fatalf("WaitURL failed: %v", err)
	}

	// Same host, different path shares the bucket
	if limiter.Allow("example.com") {
		t.Error("expected host bucket to be exhausted")
	}

	if err := limiter.WaitURL(ctx, "::invalid"); err == nil {
		t.Error("expected error for invalid URL")
	}
}

func TestLimiter_SetRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default
	key := "ollama"

	// Set strict limit for specific key
	limiter.SetRate(key, 0.1, 1) // very slow

	// First request passes (burst 1)
	if !limiter.Allow(key) {
		t.Errorf("first request should pass")
	}

	// Second request fails
	if limiter.Allow(key) {
		t.Errorf("second request should fail")
	}

	// Other key still fast
	if !limiter.Allow("openai") {
		t.Errorf("other key should pass")
	}
}

func TestLimiter_SetRateKeepsBucket(t *testing.T) {
	limiter := NewLimiter(0, 1)
	key := "example.com"

	limiter.SetRate(key, 0.1, 1)
	if !limiter.Allow(key) {
		t.Fatal("first request should pass")
	}

	// Retuning must not hand out a fresh token
	limiter.SetRate(key, 0.1, 1)
	if limiter.Allow(key) {
		t.Error("token bucket was refilled by SetRate")
	}
}
