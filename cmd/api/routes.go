package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/auth"
	"gamecontest/internal/httpx"
	"gamecontest/internal/search"
	"gamecontest/internal/submission"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg         config
	log         *logrus.Entry
	registry    *prometheus.Registry
	db          pinger
	search      *search.Service
	submissions *submission.Service
	revocations httpx.Revocations
	rateLimiter *httpx.RateLimiter
}

func newRouter(d routerDeps) http.Handler {
	searchHandler := search.NewHTTPHandler(d.search)
	submissionHandler := submission.NewHTTPHandler(d.submissions)

	authed := httpx.AuthMiddleware(d.cfg.JWTSecret, d.revocations)
	admin := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h, authed, httpx.RequireRole(auth.RoleAdmin))
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/games/search", searchHandler.Search)
	mux.HandleFunc("GET /v1/games/{id}", searchHandler.Details)

	mux.Handle("POST /v1/submissions", authed(http.HandlerFunc(submissionHandler.Register)))
	mux.Handle("GET /v1/submissions/me", authed(http.HandlerFunc(submissionHandler.Mine)))
	mux.Handle("GET /v1/submissions/pending", admin(submissionHandler.Pending))
	mux.Handle("POST /v1/submissions/{id}/approve", admin(submissionHandler.Approve))
	mux.Handle("POST /v1/submissions/{id}/reject", admin(submissionHandler.Reject))
	mux.HandleFunc("GET /v1/leaderboard", submissionHandler.Leaderboard)

	return httpx.Chain(mux,
		httpx.RecoveryMiddleware(d.log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
		d.rateLimiter.Middleware,
		httpx.MetricsMiddleware(d.registry),
	)
}
