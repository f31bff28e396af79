package search

import (
	"errors"
	"net/http"
	"strconv"

	"gamecontest/internal/httpx"
)

const maxLimit = 100

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Search handles GET /v1/games/search?q=&limit=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > maxLimit {
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_LIMIT", "limit must be between 0 and 100", nil)
			return
		}
		limit = n
	}

	candidates, err := h.service.Search(r.Context(), query.Get("q"), limit)
	if err != nil {
		if errors.Is(err, ErrQueryTooShort) {
			httpx.JSONError(w, r, http.StatusBadRequest, "QUERY_TOO_SHORT", "Type at least 3 characters", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_LIMIT", err.Error(), nil)
		return
	}

	httpx.JSONSuccess(w, r, candidates, map[string]any{"count": len(candidates)})
}

// Details handles GET /v1/games/{id}
func (h *HTTPHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_ID", "id must be a positive integer", nil)
		return
	}

	g, ok := h.service.GetDetails(r.Context(), id)
	if !ok {
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Game not found", nil)
		return
	}
	if len(g.Raw) > 0 {
		httpx.JSONSuccess(w, r, g.Raw, nil)
		return
	}
	httpx.JSONSuccess(w, r, g, nil)
}
