package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"retro": CategoryRetro,
		"Indie": CategoryIndie,
		"Aa":    CategoryAA,
		"Aaa":   CategoryAAA,
		" AAA ": CategoryAAA,
	} {
		got, err := ParseCategory(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("platinum")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCandidate_ReleaseYear(t *testing.T) {
	year, ok := Candidate{Year: "2023"}.ReleaseYear()
	assert.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = Candidate{Year: UnknownYear}.ReleaseYear()
	assert.False(t, ok)

	_, ok = Candidate{Year: "20x3"}.ReleaseYear()
	assert.False(t, ok)
}

func TestCandidate_HasPlatform(t *testing.T) {
	ps4Only := Candidate{Platforms: []Platform{PlatformPS4}}
	assert.True(t, ps4Only.HasPlatform(PlatformPS5))
	assert.False(t, ps4Only.HasPlatform(PlatformSteam))

	steam := Candidate{Platforms: []Platform{PlatformSteam}}
	assert.True(t, steam.HasPlatform(PlatformSteam))
	assert.False(t, steam.HasPlatform(PlatformPS5))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score(nil))
	v := 91
	assert.Equal(t, 91, Score(&v))
}
