// Package classify assigns contest categories (Retro, Indie, AA, AAA) to
// catalog records.
package classify

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"gamecontest/internal/game"
	"gamecontest/internal/logging"
)

const indieTag = "indie"

// Subject is the part of a catalog record the classifier looks at.
type Subject struct {
	Name       string
	Publishers []string
	Developers []string
	Genres     []string
	Tags       []string
	Popularity int
}

// Classifier evaluates the policy's rule tiers in order; the first that fires wins:
//
//  1. Retro: release year <= RetroMaxYear
//  2. AAA: franchise keyword in the name, or a AAA publisher as publisher/developer
//  3. Indie: "indie" genre/tag, or an indie publisher as publisher/developer
//  4. AAA: a AAA developer as publisher/developer
//  5. AAA: critic score and popularity heuristic
//  6. AA
type Classifier struct {
	policy *Policy
	log    *logrus.Entry
}

func New(policy *Policy, log *logrus.Entry) *Classifier {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Classifier{
		policy: policy,
		log:    logging.OrDiscard(log).WithField("component", "classifier"),
	}
}

// Policy returns the policy the classifier was built with.
func (c *Classifier) Policy() *Policy {
	return c.policy
}

// Classify never fails: anything unexpected yields CategoryAA.
func (c *Classifier) Classify(s Subject, year string, criticScore *int) (category game.Category) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{"name": s.Name, "error": fmt.Sprint(r)}).Warn("classification failed, defaulting to AA")
			category = game.CategoryAA
		}
	}()

	if y, ok := game.ParseYear(year); ok && y <= c.policy.RetroMaxYear {
		return game.CategoryRetro
	}

	name := lower(s.Name)
	companies := make([]string, 0, len(s.Publishers)+len(s.Developers))
	for _, p := range s.Publishers {
		companies = append(companies, lower(p))
	}
	for _, d := range s.Developers {
		companies = append(companies, lower(d))
	}

	if ContainsAny(name, c.policy.Franchises) || anyContains(companies, c.policy.AAAPublishers) {
		return game.CategoryAAA
	}

	if hasTag(s.Genres, indieTag) || hasTag(s.Tags, indieTag) || anyContains(companies, c.policy.IndiePublishers) {
		return game.CategoryIndie
	}

	if anyContains(companies, c.policy.AAADevelopers) {
		return game.CategoryAAA
	}

	h := c.policy.Heuristic
	score := game.Score(criticScore)
	if (score >= h.CriticScoreMin && s.Popularity > h.CriticPopularityMin) || s.Popularity > h.PopularityMin {
		return game.CategoryAAA
	}

	return game.CategoryAA
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'")

func lower(s string) string {
	return apostrophes.Replace(strings.ToLower(strings.TrimSpace(s)))
}

func anyContains(values []string, keywords []string) bool {
	for _, v := range values {
		if ContainsAny(v, keywords) {
			return true
		}
	}
	return false
}

func hasTag(names []string, tag string) bool {
	for _, n := range names {
		if strings.EqualFold(strings.TrimSpace(n), tag) {
			return true
		}
	}
	return false
}
