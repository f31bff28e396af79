package submission

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"gamecontest/internal/game"
	"gamecontest/internal/logging"
)

const DefaultLeaderboardSize = 10

type Service struct {
	repo    Repository
	catalog Catalog
	log     *logrus.Entry
	now     func() time.Time
	newID   func() string
}

func NewService(repo Repository, catalog Catalog, log *logrus.Entry) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		log:     logging.OrDiscard(log).WithField("component", "submission"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Register files a completion for review. Catalog games are classified and
// checked against the chosen platform; manual entries count as AA.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Submission, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.GameName = strings.TrimSpace(in.GameName)
	if in.UserID == "" || in.GameID < 0 {
		return Submission{}, ErrInvalidInput
	}
	if in.Platform != game.PlatformPS5 && in.Platform != game.PlatformSteam {
		return Submission{}, fmt.Errorf("%w: platform must be PS5 or Steam", ErrInvalidInput)
	}

	sub := Submission{
		ID:          s.newID(),
		UserID:      in.UserID,
		Username:    in.Username,
		GameID:      in.GameID,
		GameName:    in.GameName,
		Platform:    in.Platform,
		Category:    game.CategoryAA,
		HasPlatinum: in.HasPlatinum,
		Recompleted: in.Recompleted,
		Status:      StatusPending,
		CreatedAt:   s.now().UTC(),
	}

	if in.GameID > 0 {
		details, ok := s.catalog.GetDetails(ctx, in.GameID)
		if !ok {
			return Submission{}, ErrGameNotFound
		}
		c, ok := s.catalog.Format(*details)
		if !ok || !c.HasPlatform(in.Platform) {
			return Submission{}, ErrPlatformUnavailable
		}
		sub.GameName = c.Name
		sub.Category = c.Category
		sub.ImageURL = c.ImageURL
		sub.Snapshot = details.Raw
	} else if in.GameName == "" {
		return Submission{}, fmt.Errorf("%w: game name is required", ErrInvalidInput)
	}

	if !sub.Recompleted {
		done, err := s.repo.HasApproved(ctx, sub.UserID, sub.GameName)
		if err != nil {
			return Submission{}, fmt.Errorf("check previous completions: %w", err)
		}
		sub.Recompleted = done
	}

	sub.Points = Points(sub.Category, sub.HasPlatinum)

	if err := s.repo.Create(ctx, &sub); err != nil {
		return Submission{}, fmt.Errorf("create submission: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"submission_id": sub.ID,
		"user_id":       sub.UserID,
		"game_id":       sub.GameID,
		"category":      sub.Category,
		"points":        sub.Points,
	}).Info("submission registered")
	return sub, nil
}

// Pending returns the review queue, oldest first.
func (s *Service) Pending(ctx context.Context) ([]Submission, error) {
	return s.repo.ListByStatus(ctx, StatusPending)
}

func (s *Service) ListByUser(ctx context.Context, userID string, status Status) ([]Submission, error) {
	return s.repo.ListByUser(ctx, userID, status)
}

func (s *Service) Approve(ctx context.Context, id, reviewer string) (Submission, error) {
	return s.review(ctx, id, StatusApproved, reviewer, "")
}

func (s *Service) Reject(ctx context.Context, id, reviewer, reason string) (Submission, error) {
	return s.review(ctx, id, StatusRejected, reviewer, strings.TrimSpace(reason))
}

func (s *Service) review(ctx context.Context, id string, status Status, reviewer, reason string) (Submission, error) {
	if !validID(id) {
		return Submission{}, ErrNotFound
	}
	if err := s.repo.Review(ctx, id, status, reviewer, reason, s.now().UTC()); err != nil {
		return Submission{}, err
	}
	s.log.WithFields(logrus.Fields{
		"submission_id": id,
		"status":        status,
		"reviewer":      reviewer,
	}).Info("submission reviewed")
	return s.repo.Get(ctx, id)
}

// validID reports whether id can name a stored submission: a UUID in its
// canonical 36 character form.
func validID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// Leaderboard ranks players by approved points, then by approved games.
// Players tied on both share a rank and the next rank is skipped (1, 1, 3).
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}
	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	return rank(totals, limit), nil
}

func rank(totals []Standing, limit int) []Standing {
	out := make([]Standing, len(totals))
	copy(out, totals)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Games > out[j].Games
	})

	for i := range out {
		if i > 0 && out[i].Points == out[i-1].Points && out[i].Games == out[i-1].Games {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
