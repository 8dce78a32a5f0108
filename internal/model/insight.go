package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ReaderProfile describes what a reader cares about
type ReaderProfile struct {
	Concerns []string `json:"concerns" yaml:"concerns"` // Clause-category names
	Role     string   `json:"role" yaml:"role"`         // e.g. "buyer"
}

// LoadProfile reads a reader profile from a YAML (or JSON) file
func LoadProfile(path string) (*ReaderProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var profile ReaderProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	return &profile, nil
}

// InsightKind classifies a personalized insight
type InsightKind string

const (
	InsightConcernMatch   InsightKind = "concern_match"
	InsightRoleObligation InsightKind = "role_obligation"
)

// Importance ranks an insight. Every insight is currently HIGH.
type Importance string

const (
	ImportanceHigh Importance = "high"
)

// Insight is a reader-relevant fact derived from a profile match
type Insight struct {
	Kind         InsightKind `json:"type"`
	SectionTitle string      `json:"section"`
	Payload      string      `json:"payload"` // Matched concern or obligation action
	Importance   Importance  `json:"importance"`
}
