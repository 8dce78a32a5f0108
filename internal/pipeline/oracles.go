package pipeline

import (
	"fmt"
	"io"

	"github.com/ppiankov/lexis/internal/cache"
	"github.com/ppiankov/lexis/internal/llm"
	"github.com/ppiankov/lexis/internal/model"
	"github.com/ppiankov/lexis/internal/ner"
	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/syntax"
	"github.com/ppiankov/lexis/internal/worker"
)

// Oracles groups the external capabilities an Analyzer consumes. Any
// field may be nil; the engine then uses its rule-based paths.
type Oracles struct {
	Tokens   oracle.TokenClassifier
	ZeroShot oracle.ZeroShotClassifier
	Parser   oracle.Parser
	Clause   oracle.ClauseClassifier
}

// BuildOracles wires the configured adapters: prose NER, the LLM provider
// behind the zero-shot and clause oracles, and the syntax service. Model
// replies are cached and LLM calls share one rate limiter. A provider that
// cannot be created is reported to warnOut and left unset.
func BuildOracles(cfg *model.Config, warnOut io.Writer) Oracles {
	var oracles Oracles
	store := cache.New(cfg.Cache)
	ttl := cfg.Cache.DiskTTL

	if cfg.NER.Enabled {
		oracles.Tokens = cache.NewTokens(ner.NewProse(), store, ttl)
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg))
	if err != nil {
		fmt.Fprintf(warnOut, "Warning: Failed to initialize LLM provider: %v\n", err)
	}
	if err == nil && provider != nil {
		limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
		modelID := provider.Name() + "/" + cfg.LLM.Model
		oracles.ZeroShot = cache.NewZeroShot(llm.NewZeroShot(provider, limiter), modelID, store, ttl)
		oracles.Clause = cache.NewClause(llm.NewClauseOracle(provider, limiter), modelID, store, ttl)
	}

	if cfg.Syntax.URL != "" {
		oracles.Parser = syntax.NewClient(cfg.Syntax.URL, cfg.Syntax.Timeout)
	}

	return oracles
}

// Describe lists which oracles are active, for verbose output
func (o Oracles) Describe() map[string]bool {
	return map[string]bool{
		"entity model": o.Tokens != nil,
		"zero-shot":    o.ZeroShot != nil,
		"parser":       o.Parser != nil,
		"clause model": o.Clause != nil,
	}
}
