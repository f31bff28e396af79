// Package submission records completed games, runs them through moderator
// review and turns approved ones into contest points.
package submission

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gamecontest/internal/game"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var (
	ErrNotFound            = errors.New("submission not found")
	ErrAlreadyReviewed     = errors.New("submission already reviewed")
	ErrGameNotFound        = errors.New("game not found in catalog")
	ErrPlatformUnavailable = errors.New("game is not available on the chosen platform")
	ErrInvalidInput        = errors.New("invalid submission")
	ErrUnknownStatus       = errors.New("unknown submission status")
)

// ParseStatus is case-insensitive. The empty string parses to "" (any status).
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case "", StatusPending, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", ErrUnknownStatus
}

type Submission struct {
	ID           string        `json:"id"`
	UserID       string        `json:"user_id"`
	Username     string        `json:"username"`
	GameID       int           `json:"game_id,omitempty"`
	GameName     string        `json:"game_name"`
	Platform     game.Platform `json:"platform"`
	Category     game.Category `json:"category"`
	HasPlatinum  bool          `json:"has_platinum"`
	Recompleted  bool          `json:"recompleted"`
	Points       int           `json:"points"`
	ImageURL     string        `json:"image_url,omitempty"`
	Status       Status        `json:"status"`
	Reviewer     string        `json:"reviewer,omitempty"`
	RejectReason string        `json:"reject_reason,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	ReviewedAt   *time.Time    `json:"reviewed_at,omitempty"`

	// Snapshot is the catalog record as it was when the game was registered.
	Snapshot json.RawMessage `json:"-"`
}

// RegisterInput describes a completion claimed by a player. GameID 0 means the
// game was entered by hand and is not looked up in the catalog.
type RegisterInput struct {
	UserID      string
	Username    string
	GameID      int
	GameName    string
	Platform    game.Platform
	HasPlatinum bool
	Recompleted bool
}

// Standing is one leaderboard row.
type Standing struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Games    int    `json:"games"`
}
