package search

import (
	"strings"

	"gamecontest/internal/classify"
	"gamecontest/internal/game"
	"gamecontest/internal/textnorm"
)

// Score bands. Each band is wide enough that lower-priority signals cannot
// overturn it: name match, then franchise and substring, then critic score,
// then recency, with raw popularity as the tie breaker.
//
// The ranking differs from the order the components are added in Score:
// recency and franchise never outrank a better title match.
const (
	popularityWeight = 0.5

	bonusSubstring = 1_000_000

	bonusCritic90 = 300_000
	bonusCritic80 = 200_000
	bonusCritic70 = 100_000

	bonusNameExact  = 10_000_000
	bonusNameSubset = 5_000_000
	bonusName80     = 3_000_000
	bonusName60     = 2_000_000
	bonusName40     = 1_000_000

	bonusFranchise = 500_000
	bonusRecent    = 250_000

	recentYear = 2020
)

// Scorer ranks groups against a query.
type Scorer struct {
	franchises []string
}

// NewScorer builds a scorer awarding the franchise bonus for the given keywords.
func NewScorer(franchises []string) *Scorer {
	return &Scorer{franchises: franchises}
}

// NewScorerFromPolicy uses the scoring section of a classification policy.
func NewScorerFromPolicy(p *classify.Policy) *Scorer {
	return NewScorer(p.Scoring.Franchises)
}

// Score is non-negative and monotonic in popularity, critic score, name match,
// franchise membership and recency.
func (s *Scorer) Score(query string, g Group) float64 {
	var (
		maxPopularity int
		maxCritic     int
		recent        bool
	)
	for _, m := range g.Members {
		if m.Popularity > maxPopularity {
			maxPopularity = m.Popularity
		}
		if c := game.Score(m.CriticScore); c > maxCritic {
			maxCritic = c
		}
		if y, ok := m.ReleaseYear(); ok && y >= recentYear {
			recent = true
		}
	}

	score := float64(maxPopularity) * popularityWeight

	q := textnorm.Normalize(query)
	if q != "" && strings.Contains(g.BaseName, q) {
		score += bonusSubstring
	}

	switch {
	case maxCritic >= 90:
		score += bonusCritic90
	case maxCritic >= 80:
		score += bonusCritic80
	case maxCritic >= 70:
		score += bonusCritic70
	}

	score += nameMatchBonus(textnorm.Words(query), strings.Fields(g.BaseName))

	if classify.ContainsAny(g.BaseName, s.franchises) {
		score += bonusFranchise
	}

	if recent {
		score += bonusRecent
	}
	return score
}

// nameMatchBonus compares word sets. Similarity is the share of query words
// found in the name.
func nameMatchBonus(queryWords, nameWords []string) float64 {
	if len(queryWords) == 0 || len(nameWords) == 0 {
		return 0
	}
	qs := toSet(queryWords)
	ns := toSet(nameWords)

	common := 0
	for w := range qs {
		if ns[w] {
			common++
		}
	}

	switch {
	case common == len(qs) && common == len(ns):
		return bonusNameExact
	case common == len(qs) || common == len(ns):
		return bonusNameSubset
	}

	similarity := float64(common) / float64(len(qs))
	switch {
	case similarity >= 0.8:
		return bonusName80
	case similarity >= 0.6:
		return bonusName60
	case similarity >= 0.4:
		return bonusName40
	}
	return 0
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
