package search

import (
	"sort"

	"gamecontest/internal/game"
	"gamecontest/internal/textnorm"
)

// Group is a cluster of candidates believed to be the same underlying game.
type Group struct {
	BaseName string
	Members  []game.Candidate
}

// Grouper clusters candidates by base name.
type Grouper struct {
	namer *textnorm.BaseNamer
}

// NewGrouper builds a grouper stripping the given edition suffixes. A nil or
// empty list falls back to textnorm.DefaultEditionSuffixes.
func NewGrouper(editionSuffixes []string) *Grouper {
	if len(editionSuffixes) == 0 {
		editionSuffixes = textnorm.DefaultEditionSuffixes
	}
	return &Grouper{namer: textnorm.NewBaseNamer(editionSuffixes)}
}

// Group partitions candidates by base name. Groups keep first-seen order;
// members are ordered by release year then popularity, both descending, and
// otherwise keep their input order.
func (g *Grouper) Group(candidates []game.Candidate) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, c := range candidates {
		key := g.namer.BaseName(c.Name)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{BaseName: key})
		}
		groups[i].Members = append(groups[i].Members, c)
	}

	for i := range groups {
		members := groups[i].Members
		sort.SliceStable(members, func(a, b int) bool {
			ya, _ := members[a].ReleaseYear()
			yb, _ := members[b].ReleaseYear()
			if ya != yb {
				return ya > yb
			}
			return members[a].Popularity > members[b].Popularity
		})
	}
	return groups
}
