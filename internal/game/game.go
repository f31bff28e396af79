package game

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownCategory is returned when a category string does not name a contest category.
var ErrUnknownCategory = errors.New("unknown category")

// UnknownYear is the Year of a candidate whose release date could not be resolved.
const UnknownYear = "Unknown"

// Category is the contest bracket a game is scored under.
type Category string

const (
	CategoryRetro Category = "Retro"
	CategoryIndie Category = "Indie"
	CategoryAA    Category = "AA"
	CategoryAAA   Category = "AAA"
)

// ParseCategory accepts any casing ("aaa", "Aaa", "AAA").
func ParseCategory(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RETRO":
		return CategoryRetro, nil
	case "INDIE":
		return CategoryIndie, nil
	case "AA":
		return CategoryAA, nil
	case "AAA":
		return CategoryAAA, nil
	}
	return "", ErrUnknownCategory
}

// Platform is one of the platforms the contest accepts.
type Platform string

const (
	PlatformPS5   Platform = "PS5"
	PlatformPS4   Platform = "PS4"
	PlatformSteam Platform = "Steam"
)

// Candidate is a classified catalog result ready for ranking and display.
type Candidate struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Year        string     `json:"year"`
	Platforms   []Platform `json:"platforms"`
	Category    Category   `json:"category"`
	CriticScore *int       `json:"critic_score,omitempty"`
	Popularity  int        `json:"popularity"`
	ImageURL    string     `json:"image_url,omitempty"`
}

// ReleaseYear parses Year. ok is false for UnknownYear or anything non-numeric.
func (c Candidate) ReleaseYear() (int, bool) {
	return ParseYear(c.Year)
}

// HasPlatform reports whether the game can be played on p for contest purposes.
// PS4 titles count as PS5 titles through backwards compatibility.
func (c Candidate) HasPlatform(p Platform) bool {
	for _, have := range c.Platforms {
		if have == p {
			return true
		}
		if p == PlatformPS5 && have == PlatformPS4 {
			return true
		}
	}
	return false
}

// ParseYear accepts a bare four digit year.
func ParseYear(year string) (int, bool) {
	if len(year) != 4 {
		return 0, false
	}
	n, err := strconv.Atoi(year)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Score returns the critic score, treating a missing score as 0.
func Score(criticScore *int) int {
	if criticScore == nil {
		return 0
	}
	return *criticScore
}
