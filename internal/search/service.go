// Package search turns free-text queries into ranked, classified game
// candidates: catalog lookup, formatting, grouping of editions, scoring and
// caching.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"gamecontest/internal/classify"
	"gamecontest/internal/game"
	"gamecontest/internal/logging"
	"gamecontest/internal/platform/rawg"
)

const (
	DefaultLimit   = 25
	MinQueryLength = 3
	// CatalogPageSize oversamples the catalog so grouping has enough material.
	CatalogPageSize = 40
)

var (
	// ErrQueryTooShort tells the caller to type more characters. The catalog is not called.
	ErrQueryTooShort = errors.New("search: type at least 3 characters")
	// ErrInvalidLimit is a caller bug.
	ErrInvalidLimit = errors.New("search: limit must not be negative")
)

// CatalogClient is the part of the RAWG client the pipeline needs.
type CatalogClient interface {
	SearchGames(ctx context.Context, query string, pageSize int) (*rawg.SearchResponse, error)
	GetGame(ctx context.Context, id int) (*rawg.Game, error)
}

type Options struct {
	Cache   Cache
	Metrics *Metrics
	Logger  *logrus.Entry
}

// Service is safe for concurrent use. Concurrent misses on the same query
// share a single catalog call.
type Service struct {
	catalog    CatalogClient
	classifier *classify.Classifier
	grouper    *Grouper
	scorer     *Scorer
	cache      Cache
	metrics    *Metrics
	log        *logrus.Entry
	flight     singleflight.Group
}

func NewService(catalog CatalogClient, classifier *classify.Classifier, opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache(DefaultCacheSize, DefaultCacheTTL)
	}
	policy := classifier.Policy()
	return &Service{
		catalog:    catalog,
		classifier: classifier,
		grouper:    NewGrouper(policy.EditionSuffixes),
		scorer:     NewScorerFromPolicy(policy),
		cache:      opts.Cache,
		metrics:    opts.Metrics,
		log:        logging.OrDiscard(opts.Logger).WithField("component", "search"),
	}
}

// Search returns at most limit candidates for query, best first. limit 0 means
// DefaultLimit. Catalog failures are logged and yield an empty list; the only
// errors are ErrQueryTooShort and ErrInvalidLimit.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]game.Candidate, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	key := CacheKey(query)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.metrics.observeOutcome(outcomeHit)
		return s.finish(cached, limit), nil
	}

	if utf8.RuneCountInString(strings.TrimSpace(query)) < MinQueryLength {
		s.metrics.observeOutcome(outcomeShort)
		return []game.Candidate{}, ErrQueryTooShort
	}

	// The cache is checked again inside the flight: a caller that missed just
	// before the previous flight stored its result must not query the catalog.
	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
		ranked, err := s.rank(ctx, query)
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, ranked)
		return ranked, nil
	})
	if err != nil {
		s.metrics.observeOutcome(outcomeError)
		s.log.WithFields(logrus.Fields{"query": query, "error": err}).Warn("catalog search failed")
		return s.finish(nil, limit), nil
	}

	s.metrics.observeOutcome(outcomeMiss)
	return s.finish(v.([]game.Candidate), limit), nil
}

// GetDetails is a passthrough to the catalog with no caching. ok is false when
// the game does not exist or the catalog is unreachable.
func (s *Service) GetDetails(ctx context.Context, id int) (*rawg.Game, bool) {
	if id <= 0 {
		return nil, false
	}
	start := time.Now()
	g, err := s.catalog.GetGame(ctx, id)
	s.metrics.observeCatalog("details", start)
	if err != nil {
		if !errors.Is(err, rawg.ErrNotFound) {
			s.log.WithFields(logrus.Fields{"game_id": id, "error": err}).Warn("catalog details failed")
		}
		return nil, false
	}
	return g, true
}

// Format classifies a catalog record the same way search results are.
func (s *Service) Format(g rawg.Game) (game.Candidate, bool) {
	return FormatGame(g, s.classifier)
}

// rank runs the uncached part of the pipeline and returns the full ranked list.
func (s *Service) rank(ctx context.Context, query string) ([]game.Candidate, error) {
	start := time.Now()
	res, err := s.catalog.SearchGames(ctx, query, CatalogPageSize)
	s.metrics.observeCatalog("search", start)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(res.Results))
	candidates := make([]game.Candidate, 0, len(res.Results))
	for _, g := range res.Results {
		c, ok := FormatGame(g, s.classifier)
		if !ok || c.Year == game.UnknownYear {
			continue
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		candidates = append(candidates, c)
	}

	groups := s.grouper.Group(candidates)
	scores := make([]float64, len(groups))
	order := make([]int, len(groups))
	for i, g := range groups {
		scores[i] = s.scorer.Score(query, g)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]game.Candidate, 0, len(candidates))
	for _, i := range order {
		ranked = append(ranked, groups[i].Members...)
	}
	return ranked, nil
}

// finish truncates to limit and returns a slice owned by the caller; callers
// sharing a flight would otherwise share one backing array.
func (s *Service) finish(ranked []game.Candidate, limit int) []game.Candidate {
	out := make([]game.Candidate, min(len(ranked), limit))
	copy(out, ranked)
	s.metrics.observeResults(len(out))
	return out
}
