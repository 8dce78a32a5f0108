package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/lexis/internal/oracle"
	"github.com/ppiankov/lexis/internal/worker"
)

const scoringSystem = "You classify passages of legal contracts. You never explain. " +
	"Return strict JSON only: one object mapping every candidate label to a probability between 0 and 1, probabilities summing to 1."

// maxClauseChars bounds the section text sent for clause classification
const maxClauseChars = 6000

// ZeroShot implements oracle.ZeroShotClassifier on top of a Provider
type ZeroShot struct {
	provider Provider
	limiter  *worker.Limiter
}

// NewZeroShot creates a zero-shot oracle. limiter may be nil.
func NewZeroShot(provider Provider, limiter *worker.Limiter) *ZeroShot {
	return &ZeroShot{provider: provider, limiter: limiter}
}

// ZeroShot scores sentence against labels
func (z *ZeroShot) ZeroShot(ctx context.Context, sentence string, labels []string) (oracle.ZeroShotResult, error) {
	scores, err := score(ctx, z.provider, z.limiter, "sentence", sentence, labels)
	if err != nil {
		return oracle.ZeroShotResult{}, err
	}
	return oracle.RankScores(labels, scores), nil
}

// ClauseOracle implements oracle.ClauseClassifier on top of a Provider
type ClauseOracle struct {
	provider Provider
	limiter  *worker.Limiter
	labels   []string
}

// NewClauseOracle creates a clause oracle over oracle.ClauseLabels
func NewClauseOracle(provider Provider, limiter *worker.Limiter) *ClauseOracle {
	return &ClauseOracle{provider: provider, limiter: limiter, labels: oracle.ClauseLabels}
}

// ClassifyClause picks the clause category of a section
func (c *ClauseOracle) ClassifyClause(ctx context.Context, content string) (oracle.ClauseResult, error) {
	if len(content) > maxClauseChars {
		cut := maxClauseChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}
	scores, err := score(ctx, c.provider, c.limiter, "contract section", content, c.labels)
	if err != nil {
		return oracle.ClauseResult{}, err
	}
	return oracle.ClauseFromScores(c.labels, scores), nil
}

func score(ctx context.Context, provider Provider, limiter *worker.Limiter, kind, text string, labels []string) (map[string]float64, error) {
	if provider == nil {
		return nil, oracle.ErrUnavailable
	}
	if err := limiter.Wait(ctx, provider.Name()); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	resp, err := provider.Complete(ctx, CompletionRequest{
		System: scoringSystem,
		Prompt: BuildScoringPrompt(kind, text, labels),
	})
	if err != nil {
		return nil, err
	}

	return ParseScores(resp.Text, labels)
}

// BuildScoringPrompt asks for a probability per label
func BuildScoringPrompt(kind, text string, labels []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Classify the following %s.\n\nCandidate labels:\n", kind)
	for _, label := range labels {
		fmt.Fprintf(&b, "- %s\n", label)
	}
	fmt.Fprintf(&b, "\nText:\n\"\"\"\n%s\n\"\"\"\n\n", text)
	b.WriteString(`Respond with JSON such as {"`)
	b.WriteString(strings.Join(labels, `": 0.0, "`))
	b.WriteString(`": 0.0}`)
	return b.String()
}

// ParseScores extracts label probabilities from a model reply. Code fences
// and prose around the JSON object are tolerated, as is a {"scores": {...}}
// wrapper. Labels match case-insensitively; unknown keys are ignored and
// the result is normalized to sum to 1.
func ParseScores(raw string, labels []string) (map[string]float64, error) {
	body := stripCodeFences(raw)
	start, end := strings.Index(body, "{"), strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in response: %q", truncate(raw, 80))
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("parse scores: %w", err)
	}
	if inner, ok := obj["scores"]; ok {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(inner, &nested); err == nil {
			obj = nested
		}
	}

	byLower := make(map[string]string, len(labels))
	for _, label := range labels {
		byLower[strings.ToLower(label)] = label
	}

	scores := make(map[string]float64, len(labels))
	total := 0.0
	for key, rawValue := range obj {
		label, ok := byLower[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(rawValue, &v); err != nil {
			continue
		}
		if v < 0 {
			v = 0
		}
		scores[label] = v
		total += v
	}

	if total == 0 {
		return nil, fmt.Errorf("response scored none of the labels: %q", truncate(raw, 80))
	}
	for label := range scores {
		scores[label] /= total
	}
	return scores, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
