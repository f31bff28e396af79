package submission

import (
	"errors"
	"net/http"
	"strconv"

	"gamecontest/internal/game"
	"gamecontest/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type registerRequest struct {
	Username    string `json:"username" validate:"max=64"`
	GameID      int    `json:"game_id" validate:"gte=0"`
	GameName    string `json:"game_name" validate:"required_without=GameID,max=200"`
	Platform    string `json:"platform" validate:"required,platform"`
	HasPlatinum bool   `json:"has_platinum"`
	Recompleted bool   `json:"recompleted"`
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Register handles POST /v1/submissions
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
		return
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid submission", details)
		return
	}

	sub, err := h.service.Register(r.Context(), RegisterInput{
		UserID:      httpx.UserIDFrom(r),
		Username:    req.Username,
		GameID:      req.GameID,
		GameName:    req.GameName,
		Platform:    game.Platform(req.Platform),
		HasPlatinum: req.HasPlatinum,
		Recompleted: req.Recompleted,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, sub)
}

// Mine handles GET /v1/submissions/me?status=
func (h *HTTPHandler) Mine(w http.ResponseWriter, r *http.Request) {
	status, err := ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_STATUS", "status must be PENDING, APPROVED or REJECTED", nil)
		return
	}
	subs, err := h.service.ListByUser(r.Context(), httpx.UserIDFrom(r), status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, subs, map[string]any{"count": len(subs)})
}

// Pending handles GET /v1/submissions/pending
func (h *HTTPHandler) Pending(w http.ResponseWriter, r *http.Request) {
	subs, err := h.service.Pending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, subs, map[string]any{"count": len(subs)})
}

// Approve handles POST /v1/submissions/{id}/approve
func (h *HTTPHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.Approve(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, sub, nil)
}

// Reject handles POST /v1/submissions/{id}/reject
func (h *HTTPHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.JSONError(w, r, http.StatusBadRequest, "INVALID_JSON", "Invalid request body", nil)
			return
		}
	}
	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid rejection", details)
		return
	}

	sub, err := h.service.Reject(r.Context(), r.PathValue("id"), httpx.UserIDFrom(r), req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, sub, nil)
}

// Leaderboard handles GET /v1/leaderboard?limit=
func (h *HTTPHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	standings, err := h.service.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, standings, nil)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Submission not found", nil)
	case errors.Is(err, ErrAlreadyReviewed):
		httpx.JSONError(w, r, http.StatusConflict, "ALREADY_REVIEWED", "Submission was already reviewed", nil)
	case errors.Is(err, ErrGameNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "GAME_NOT_FOUND", "Game not found in catalog", nil)
	case errors.Is(err, ErrPlatformUnavailable):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "PLATFORM_UNAVAILABLE", "Game is not available on that platform", nil)
	case errors.Is(err, ErrInvalidInput):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
