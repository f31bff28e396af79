package submission

import (
	"context"
	"time"

	"gamecontest/internal/game"
	"gamecontest/internal/platform/rawg"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=submission

// Repository stores submissions.
type Repository interface {
	Create(ctx context.Context, s *Submission) error
	Get(ctx context.Context, id string) (Submission, error)
	// ListByStatus returns submissions oldest first.
	ListByStatus(ctx context.Context, status Status) ([]Submission, error)
	// ListByUser returns submissions newest first. An empty status means all.
	ListByUser(ctx context.Context, userID string, status Status) ([]Submission, error)
	// HasApproved matches gameName case-insensitively.
	HasApproved(ctx context.Context, userID, gameName string) (bool, error)
	// Review moves a PENDING submission to status. It returns ErrNotFound or
	// ErrAlreadyReviewed when that is not possible.
	Review(ctx context.Context, id string, status Status, reviewer, reason string, at time.Time) error
	// Totals aggregates approved submissions per user. Rank is left zero.
	Totals(ctx context.Context) ([]Standing, error)
}

// Catalog resolves and classifies games the same way search does.
type Catalog interface {
	GetDetails(ctx context.Context, id int) (*rawg.Game, bool)
	Format(g rawg.Game) (game.Candidate, bool)
}
