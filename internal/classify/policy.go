package classify

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPolicy is returned when a policy document fails validation.
var ErrInvalidPolicy = errors.New("invalid classification policy")

//go:embed default_policy.yaml
var defaultPolicyYAML []byte

// Policy is the swappable data behind classification and scoring.
type Policy struct {
	RetroMaxYear    int       `yaml:"retro_max_year"`
	Franchises      []string  `yaml:"franchises"`
	AAAPublishers   []string  `yaml:"aaa_publishers"`
	IndiePublishers []string  `yaml:"indie_publishers"`
	AAADevelopers   []string  `yaml:"aaa_developers"`
	Heuristic       Heuristic `yaml:"heuristic"`
	Scoring         Scoring   `yaml:"scoring"`
	EditionSuffixes []string  `yaml:"edition_suffixes"`
}

// Heuristic holds the popularity / critic thresholds of the last AAA rule.
type Heuristic struct {
	CriticScoreMin      int `yaml:"critic_score_min"`
	CriticPopularityMin int `yaml:"critic_popularity_min"`
	PopularityMin       int `yaml:"popularity_min"`
}

// Scoring holds the data used by the search scorer.
type Scoring struct {
	Franchises []string `yaml:"franchises"`
}

// DefaultPolicy returns the policy compiled into the binary.
func DefaultPolicy() *Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded policy: %v", err))
	}
	return p
}

// LoadPolicy reads a YAML policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy %s: %w", path, err)
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("policy %s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes and validates a YAML policy. Keywords are lowercased and
// trimmed; blanks are dropped.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if p.RetroMaxYear <= 0 {
		return nil, fmt.Errorf("%w: retro_max_year must be positive", ErrInvalidPolicy)
	}
	if p.Heuristic.CriticScoreMin < 0 || p.Heuristic.CriticScoreMin > 100 {
		return nil, fmt.Errorf("%w: heuristic.critic_score_min must be within 0-100", ErrInvalidPolicy)
	}
	if p.Heuristic.PopularityMin <= 0 {
		return nil, fmt.Errorf("%w: heuristic.popularity_min must be positive", ErrInvalidPolicy)
	}

	p.Franchises = cleanKeywords(p.Franchises)
	p.AAAPublishers = cleanKeywords(p.AAAPublishers)
	p.IndiePublishers = cleanKeywords(p.IndiePublishers)
	p.AAADevelopers = cleanKeywords(p.AAADevelopers)
	p.Scoring.Franchises = cleanKeywords(p.Scoring.Franchises)
	p.EditionSuffixes = cleanKeywords(p.EditionSuffixes)
	return &p, nil
}

func cleanKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, k := range in {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// ContainsAny reports whether s contains any keyword. s must already be lowercase.
func ContainsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
