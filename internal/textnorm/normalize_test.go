package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"The Last of Us™ Part II", "the last of us part 2"},
		{"The Last of Us Part I", "the last of us part 1"},
		{"Part III: Finale", "part 3 finale"},
		{"Marvel's Spider-Man: Miles Morales", "marvel's spider man miles morales"},
		{"Dr. Mario®", "dr mario"},
		{"  Pokémon   Legends  ", "pokemon legends"},
		{"Partition", "partition"},
		{"Part Index", "part index"},
		{"The Last of Us Part  II", "the last of us part 2"},
		{"The Last of Us Part - II", "the last of us part 2"},
		{"part\tii", "part 2"},
		{"Part: III", "part 3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"God of War Ragnarök",
		"Resident Evil 4 (2005)",
		"FINAL FANTASY VII REMAKE INTERGRADE",
		"Half-Life 2: Episode One",
		"The Witcher® 3: Wild Hunt – Game of the Year Edition",
		"part ii part i part iii",
		"-- :: ..",
		"İstanbul Kıyamet",
		"The Last of Us Part  II",
		"The Last of Us Part - II",
		"part\tii",
		"part\n\niii",
		"Part. I",
		"part i i",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"resident", "evil", "4"}, Words("Resident Evil 4"))
	assert.Equal(t, []string{"halo", "2"}, Words("Halo halo 2"))
	assert.Empty(t, Words("  "))
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Resident Evil 4", "resident evil 4"},
		{"Resident Evil 4 Remake", "resident evil 4"},
		{"Resident Evil 4 (2005)", "resident evil 4"},
		{"The Witcher 3: Wild Hunt - Game of the Year Edition", "the witcher 3 wild hunt"},
		{"Fallout 4: GOTY", "fallout 4"},
		{"Hades Deluxe Edition", "hades"},
		{"Death Stranding Director's Cut", "death stranding"},
		{"Divinity: Original Sin (Enhanced Edition)", "divinity original sin"},
		{"Deluxe", "deluxe"},
		{"Remastered", "remastered"},
		{"Remastered (2009)", "remastered"},
		{"Halo Remastered Deluxe Edition", "halo"},
		{"Deluxe Ski Jump 2", "deluxe ski jump 2"},
		{"Remaster Hero Academy", "remaster hero academy"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseName(tt.in))
		})
	}
}

func TestBaseName_DiffersFromNormalize(t *testing.T) {
	title := "Skyrim Special Edition"
	assert.Equal(t, "skyrim special edition", Normalize(title))
	assert.Equal(t, "skyrim", BaseName(title))
}

func TestNewBaseNamer_CustomSuffixes(t *testing.T) {
	b := NewBaseNamer([]string{"Anniversary Edition"})
	assert.Equal(t, "halo", b.BaseName("Halo: Anniversary Edition"))
	assert.Equal(t, "halo remastered", b.BaseName("Halo Remastered"))

	empty := NewBaseNamer(nil)
	assert.Equal(t, "halo deluxe", empty.BaseName("Halo (2001) Deluxe"))
}

func TestBaseName_EditionOnlyTitlesStayApart(t *testing.T) {
	assert.NotEqual(t, BaseName("Remastered"), BaseName("Deluxe"))
	assert.NotEmpty(t, BaseName("GOTY"))
}
