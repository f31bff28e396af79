package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gamecontest/internal/game"
)

const submissionColumns = `
	id, user_id, username, game_id, game_name, platform, category,
	has_platinum, recompleted, points, image_url, status,
	reviewer, reject_reason, created_at, reviewed_at`

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) Create(ctx context.Context, s *Submission) error {
	const sql = `
		INSERT INTO submissions (
			id, user_id, username, game_id, game_name, platform, category,
			has_platinum, recompleted, points, image_url, status, snapshot, created_at)
		VALUES ($1, $2, $3, NULLIF($4, 0), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var snapshot []byte
	if len(s.Snapshot) > 0 {
		snapshot = s.Snapshot
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, sql,
		s.ID, s.UserID, s.Username, s.GameID, s.GameName, string(s.Platform), string(s.Category),
		s.HasPlatinum, s.Recompleted, s.Points, s.ImageURL, string(s.Status), snapshot, s.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Submission, error) {
	if !validID(id) {
		return Submission{}, ErrNotFound
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	s, err := scanSubmission(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return s, err
}

func (r *PostgresRepo) ListByStatus(ctx context.Context, status Status) ([]Submission, error) {
	return r.list(ctx, `SELECT `+submissionColumns+`
		FROM submissions
		WHERE status = $1
		ORDER BY created_at ASC, id ASC`, string(status))
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string, status Status) ([]Submission, error) {
	return r.list(ctx, `SELECT `+submissionColumns+`
		FROM submissions
		WHERE user_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC`, userID, string(status))
}

func (r *PostgresRepo) list(ctx context.Context, sql string, args ...any) ([]Submission, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) HasApproved(ctx context.Context, userID, gameName string) (bool, error) {
	const sql = `
		SELECT EXISTS (
			SELECT 1 FROM submissions
			WHERE user_id = $1 AND lower(game_name) = lower($2) AND status = 'APPROVED'
		)`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.db.QueryRow(ctx, sql, userID, gameName).Scan(&exists)
	return exists, err
}

func (r *PostgresRepo) Review(ctx context.Context, id string, status Status, reviewer, reason string, at time.Time) error {
	if !validID(id) {
		return ErrNotFound
	}
	const update = `
		UPDATE submissions
		SET status = $2, reviewer = $3, reject_reason = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'PENDING'`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, update, id, string(status), reviewer, reason, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current string
	err = r.db.QueryRow(ctx, `SELECT status FROM submissions WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: status is %s", ErrAlreadyReviewed, current)
}

func (r *PostgresRepo) Totals(ctx context.Context) ([]Standing, error) {
	const sql = `
		SELECT user_id, MAX(username), SUM(points), COUNT(*)
		FROM submissions
		WHERE status = 'APPROVED'
		GROUP BY user_id
		ORDER BY SUM(points) DESC, COUNT(*) DESC, user_id ASC`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standing
	for rows.Next() {
		var s Standing
		if err := rows.Scan(&s.UserID, &s.Username, &s.Points, &s.Games); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSubmission(row pgx.Row) (Submission, error) {
	var (
		s        Submission
		gameID   *int
		platform string
		category string
		status   string
	)
	err := row.Scan(
		&s.ID, &s.UserID, &s.Username, &gameID, &s.GameName, &platform, &category,
		&s.HasPlatinum, &s.Recompleted, &s.Points, &s.ImageURL, &status,
		&s.Reviewer, &s.RejectReason, &s.CreatedAt, &s.ReviewedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	if gameID != nil {
		s.GameID = *gameID
	}
	s.Platform = game.Platform(platform)
	s.Category = game.Category(category)
	s.Status = Status(status)
	return s, nil
}
