package rawg

import "encoding/json"

// NamedEntity is the {id, name, slug} shape RAWG uses for publishers,
// developers, genres, tags and platforms.
type NamedEntity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PlatformEntry struct {
	Platform NamedEntity `json:"platform"`
}

// Game matches both the /games list items and the /games/{id} detail body.
// List items usually omit publishers and developers.
type Game struct {
	ID              int             `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	Released        string          `json:"released"`
	BackgroundImage string          `json:"background_image"`
	Metacritic      *int            `json:"metacritic"`
	Added           int             `json:"added"`
	RatingsCount    int             `json:"ratings_count"`
	Platforms       []PlatformEntry `json:"platforms"`
	Publishers      []NamedEntity   `json:"publishers"`
	Developers      []NamedEntity   `json:"developers"`
	Genres          []NamedEntity   `json:"genres"`
	Tags            []NamedEntity   `json:"tags"`

	// Raw is the undecoded JSON body the record was parsed from.
	Raw json.RawMessage `json:"-"`
}

// SearchResponse matches /games?search=.
type SearchResponse struct {
	Count   int
	Next    string
	Results []Game
}

type searchPage struct {
	Count   int               `json:"count"`
	Next    string            `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// Names flattens a list of entities to their names.
func Names(entities []NamedEntity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		if e.Name != "" {
			out = append(out, e.Name)
		}
	}
	return out
}

// PlatformNames flattens the nested platform list.
func (g Game) PlatformNames() []string {
	out := make([]string, 0, len(g.Platforms))
	for _, p := range g.Platforms {
		if p.Platform.Name != "" {
			out = append(out, p.Platform.Name)
		}
	}
	return out
}
