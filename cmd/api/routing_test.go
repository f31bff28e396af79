package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamecontest/internal/auth"
	"gamecontest/internal/classify"
	"gamecontest/internal/httpx"
	"gamecontest/internal/logging"
	"gamecontest/internal/platform/rawg"
	"gamecontest/internal/search"
	"gamecontest/internal/submission"
)

const testSecret = "routing-secret"

type stubCatalog struct{}

func (stubCatalog) SearchGames(context.Context, string, int) (*rawg.SearchResponse, error) {
	return &rawg.SearchResponse{}, nil
}

func (stubCatalog) GetGame(context.Context, int) (*rawg.Game, error) {
	return nil, rawg.ErrNotFound
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, db pinger) (http.Handler, *submission.MockRepository) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	repo := submission.NewMockRepository(gomock.NewController(t))
	searchService := search.NewService(stubCatalog{}, classify.New(nil, nil), search.Options{})
	registry := prometheus.NewRegistry()

	handler := newRouter(routerDeps{
		cfg:         config{JWTSecret: testSecret, MaxBodyBytes: 1 << 20},
		log:         logging.Discard(),
		registry:    registry,
		db:          db,
		search:      searchService,
		submissions: submission.NewService(repo, searchService, nil),
		rateLimiter: httpx.NewRateLimiter(ctx, 1000, 1000),
	})
	return handler, repo
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, _, err := auth.GenerateToken(testSecret, "player-1", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestRouter(t *testing.T) {
	handler, repo := newTestRouter(t, stubPinger{})
	repo.EXPECT().Totals(gomock.Any()).Return(nil, nil).AnyTimes()
	repo.EXPECT().ListByStatus(gomock.Any(), submission.StatusPending).Return([]submission.Submission{}, nil).AnyTimes()

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
		{"ready", http.MethodGet, "/readyz", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"search", http.MethodGet, "/v1/games/search?q=celeste", "", http.StatusOK},
		{"search too short", http.MethodGet, "/v1/games/search?q=ce", "", http.StatusBadRequest},
		{"details missing", http.MethodGet, "/v1/games/404", "", http.StatusNotFound},
		{"leaderboard", http.MethodGet, "/v1/leaderboard", "", http.StatusOK},
		{"submit needs token", http.MethodPost, "/v1/submissions", "", http.StatusUnauthorized},
		{"pending needs admin", http.MethodGet, "/v1/submissions/pending", bearer(t, auth.RoleUser), http.StatusForbidden},
		{"pending as admin", http.MethodGet, "/v1/submissions/pending", bearer(t, auth.RoleAdmin), http.StatusOK},
		{"wrong method", http.MethodDelete, "/v1/leaderboard", "", http.StatusMethodNotAllowed},
		{"unversioned path", http.MethodGet, "/games/search?q=celeste", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.auth != "" {
				r.Header.Set("Authorization", tt.auth)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(httpx.RequestIDHeader))
		})
	}
}

func TestRouter_NotReady(t *testing.T) {
	handler, _ := newTestRouter(t, stubPinger{err: errors.New("down")})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
