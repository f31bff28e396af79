package search

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamecontest/internal/classify"
	"gamecontest/internal/game"
	"gamecontest/internal/platform/rawg"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) SearchGames(ctx context.Context, query string, pageSize int) (*rawg.SearchResponse, error) {
	args := m.Called(ctx, query, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rawg.SearchResponse), args.Error(1)
}

func (m *mockCatalog) GetGame(ctx context.Context, id int) (*rawg.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rawg.Game), args.Error(1)
}

func intPtr(v int) *int { return &v }

func catalogGame(id int, name, released string, added int, metacritic *int, platforms ...string) rawg.Game {
	g := rawg.Game{
		ID:         id,
		Name:       name,
		Released:   released,
		Added:      added,
		Metacritic: metacritic,
	}
	for _, p := range platforms {
		g.Platforms = append(g.Platforms, rawg.PlatformEntry{Platform: rawg.NamedEntity{Name: p}})
	}
	return g
}

func page(games ...rawg.Game) *rawg.SearchResponse {
	return &rawg.SearchResponse{Count: len(games), Results: games}
}

func candidate(id int, name, year string, popularity int, criticScore *int) game.Candidate {
	return game.Candidate{
		ID:          id,
		Name:        name,
		Year:        year,
		Platforms:   []game.Platform{game.PlatformPS5},
		Category:    game.CategoryAA,
		CriticScore: criticScore,
		Popularity:  popularity,
	}
}

func ids(candidates []game.Candidate) []int {
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.ID
	}
	return out
}

func newTestService(catalog CatalogClient, opts Options) *Service {
	return NewService(catalog, classify.New(classify.DefaultPolicy(), nil), opts)
}
