package search

import (
	"strings"

	"gamecontest/internal/classify"
	"gamecontest/internal/game"
	"gamecontest/internal/platform/rawg"
)

// platformOrder is the display order of Candidate.Platforms.
var platformOrder = []game.Platform{game.PlatformPS5, game.PlatformPS4, game.PlatformSteam}

// FormatGame turns a catalog record into a classified candidate. ok is false
// when the record has no name or is on none of the contest platforms. A
// candidate with an unresolvable release date carries game.UnknownYear.
func FormatGame(g rawg.Game, classifier *classify.Classifier) (game.Candidate, bool) {
	name := strings.TrimSpace(g.Name)
	if name == "" {
		return game.Candidate{}, false
	}

	platforms := mapPlatforms(g.PlatformNames())
	if len(platforms) == 0 {
		return game.Candidate{}, false
	}

	year := releaseYear(g.Released)
	subject := classify.Subject{
		Name:       name,
		Publishers: rawg.Names(g.Publishers),
		Developers: rawg.Names(g.Developers),
		Genres:     rawg.Names(g.Genres),
		Tags:       rawg.Names(g.Tags),
		Popularity: g.Added,
	}

	return game.Candidate{
		ID:          g.ID,
		Name:        name,
		Year:        year,
		Platforms:   platforms,
		Category:    classifier.Classify(subject, year, g.Metacritic),
		CriticScore: g.Metacritic,
		Popularity:  g.Added,
		ImageURL:    g.BackgroundImage,
	}, true
}

func mapPlatforms(names []string) []game.Platform {
	found := make(map[game.Platform]bool, len(platformOrder))
	for _, n := range names {
		switch {
		case strings.Contains(n, "PlayStation 5"):
			found[game.PlatformPS5] = true
		case strings.Contains(n, "PlayStation 4"):
			found[game.PlatformPS4] = true
		case n == "PC":
			found[game.PlatformSteam] = true
		}
	}
	out := make([]game.Platform, 0, len(found))
	for _, p := range platformOrder {
		if found[p] {
			out = append(out, p)
		}
	}
	return out
}

// releaseYear takes the year out of a "YYYY-MM-DD" release date.
func releaseYear(released string) string {
	y, _, _ := strings.Cut(strings.TrimSpace(released), "-")
	if _, ok := game.ParseYear(y); !ok {
		return game.UnknownYear
	}
	return y
}
