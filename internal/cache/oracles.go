package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/ppiankov/lexis/internal/oracle"
)

// memoize returns the cached value for key or computes, stores and returns
// it. Failed calls are never cached; a broken entry is recomputed.
func memoize[T any](c Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if data, ok := c.Get(key); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		_ = c.Delete(key)
	}

	value, err := compute()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		_ = c.Set(key, data, ttl)
	}
	return value, nil
}

// ZeroShot memoizes a zero-shot oracle by model, sentence and label set
type ZeroShot struct {
	next  oracle.ZeroShotClassifier
	model string
	cache Cache
	ttl   time.Duration
}

// NewZeroShot wraps next. modelID names the backing model (for example
// "openai/gpt-4o-mini") and keeps answers from different models apart.
// With a nil cache the wrapper is transparent.
func NewZeroShot(next oracle.ZeroShotClassifier, modelID string, c Cache, ttl time.Duration) *ZeroShot {
	return &ZeroShot{next: next, model: modelID, cache: c, ttl: ttl}
}

// ZeroShot implements oracle.ZeroShotClassifier
func (z *ZeroShot) ZeroShot(ctx context.Context, sentence string, labels []string) (oracle.ZeroShotResult, error) {
	compute := func() (oracle.ZeroShotResult, error) {
		return z.next.ZeroShot(ctx, sentence, labels)
	}
	if z.cache == nil {
		return compute()
	}
	return memoize(z.cache, CacheKey("zeroshot", z.model, strings.Join(labels, "\x1f"), sentence), z.ttl, compute)
}

// Clause memoizes a clause oracle by model and section content
type Clause struct {
	next  oracle.ClauseClassifier
	model string
	cache Cache
	ttl   time.Duration
}

// NewClause wraps next; modelID works as in NewZeroShot
func NewClause(next oracle.ClauseClassifier, modelID string, c Cache, ttl time.Duration) *Clause {
	return &Clause{next: next, model: modelID, cache: c, ttl: ttl}
}

// ClassifyClause implements oracle.ClauseClassifier
func (c *Clause) ClassifyClause(ctx context.Context, content string) (oracle.ClauseResult, error) {
	compute := func() (oracle.ClauseResult, error) {
		return c.next.ClassifyClause(ctx, content)
	}
	if c.cache == nil {
		return compute()
	}
	return memoize(c.cache, CacheKey("clause", c.model, content), c.ttl, compute)
}

// Tokens memoizes a token classifier by chunk text
type Tokens struct {
	next  oracle.TokenClassifier
	cache Cache
	ttl   time.Duration
}

// NewTokens wraps next
func NewTokens(next oracle.TokenClassifier, c Cache, ttl time.Duration) *Tokens {
	return &Tokens{next: next, cache: c, ttl: ttl}
}

// ClassifyTokens implements oracle.TokenClassifier
func (t *Tokens) ClassifyTokens(ctx context.Context, chunk string) ([]oracle.TokenEntity, error) {
	compute := func() ([]oracle.TokenEntity, error) {
		return t.next.ClassifyTokens(ctx, chunk)
	}
	if t.cache == nil {
		return compute()
	}
	return memoize(t.cache, CacheKey("tokens", chunk), t.ttl, compute)
}
