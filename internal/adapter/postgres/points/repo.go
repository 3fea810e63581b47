// Package points implements the Points Ledger storage using PostgreSQL.
package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

const getConfigSQL = `
SELECT
    coalesce((SELECT points_per_rating FROM points_config WHERE id = 1), $1::int),
    coalesce((SELECT daily_review_cap FROM review_limits WHERE id = 1), $2::int),
    greatest(
        coalesce((SELECT updated_at FROM points_config WHERE id = 1), 'epoch'::timestamptz),
        coalesce((SELECT updated_at FROM review_limits WHERE id = 1), 'epoch'::timestamptz)
    )`

const setPointsPerRatingSQL = `
INSERT INTO points_config (id, points_per_rating, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET points_per_rating = EXCLUDED.points_per_rating, updated_at = now()`

const ensurePointsPerRatingSQL = `
INSERT INTO points_config (id, points_per_rating) VALUES (1, $1)
ON CONFLICT (id) DO NOTHING`

const getBalanceSQL = `
SELECT identity, available_points, lifetime_points, updated_at
FROM points_balances WHERE identity = $1`

// creditSQL accrues on the stored row so concurrent awards for the same
// identity cannot overwrite each other.
const creditSQL = `
INSERT INTO points_balances (identity, available_points, lifetime_points, updated_at)
VALUES ($1, $2, $2, $3)
ON CONFLICT (identity) DO UPDATE SET
    available_points = points_balances.available_points + EXCLUDED.available_points,
    lifetime_points  = points_balances.lifetime_points + EXCLUDED.lifetime_points,
    updated_at       = EXCLUDED.updated_at
RETURNING identity, available_points, lifetime_points, updated_at`

const debitSQL = `
UPDATE points_balances
SET available_points = available_points - $2, updated_at = $3
WHERE identity = $1 AND available_points >= $2
RETURNING identity, available_points, lifetime_points, updated_at`

// insertTransactionSQL is a no-op for a second earn_rating row on the same
// review; the partial unique index is the arbiter.
const insertTransactionSQL = `
INSERT INTO points_transactions (id, identity, points_amount, type, review_ref, description, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (review_ref) WHERE type = 'earn_rating' DO NOTHING`

var transactionColumns = []string{
	"id", "identity", "points_amount", "type", "review_ref", "description", "created_at",
}

// Repo provides points persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new points repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// GetConfig returns the reward settings. Missing rows fall back to defaults.
func (r *Repo) GetConfig(ctx context.Context) (domain.PointsConfig, error) {
	cfg := domain.DefaultPointsConfig()
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, getConfigSQL, domain.DefaultPointsPerRating, domain.DefaultDailyReviewCap).
		Scan(&cfg.PointsPerRating, &cfg.DailyReviewCap, &cfg.UpdatedAt)
	if err != nil {
		return domain.PointsConfig{}, fmt.Errorf("get points config: %w", err)
	}
	cfg.UpdatedAt = cfg.UpdatedAt.UTC()
	return cfg, nil
}

// SetPointsPerRating stores the award per accepted review.
func (r *Repo) SetPointsPerRating(ctx context.Context, points int) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, setPointsPerRatingSQL, points); err != nil {
		return postgres.MapError(err, "points_config", 1)
	}
	return nil
}

// EnsurePointsPerRating seeds the award per review when no configuration row
// exists yet. A stored value is left alone.
func (r *Repo) EnsurePointsPerRating(ctx context.Context, points int) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, ensurePointsPerRatingSQL, points); err != nil {
		return postgres.MapError(err, "points_config", 1)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Balances
// ---------------------------------------------------------------------------

// GetBalance returns the balance of identity, or a zero balance if it has
// never earned points.
func (r *Repo) GetBalance(ctx context.Context, identity domain.RaterIdentity) (domain.PointsBalance, error) {
	b, err := scanBalance(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getBalanceSQL, string(identity)))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ZeroBalance(identity), nil
	}
	if err != nil {
		return domain.PointsBalance{}, postgres.MapError(err, "points_balance", identity)
	}
	return b, nil
}

// Credit adds amount to both available and lifetime points, creating the
// balance row on first award.
func (r *Repo) Credit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error) {
	b, err := scanBalance(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, creditSQL, string(identity), amount, now.UTC()))
	if err != nil {
		return domain.PointsBalance{}, postgres.MapError(err, "points_balance", identity)
	}
	return b, nil
}

// Debit subtracts amount from available points. It returns
// *domain.InsufficientPointsError when the balance is too small.
func (r *Repo) Debit(ctx context.Context, identity domain.RaterIdentity, amount int, now time.Time) (domain.PointsBalance, error) {
	b, err := scanBalance(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, debitSQL, string(identity), amount, now.UTC()))
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.PointsBalance{}, postgres.MapError(err, "points_balance", identity)
	}

	current, getErr := r.GetBalance(ctx, identity)
	if getErr != nil {
		return domain.PointsBalance{}, getErr
	}
	return domain.PointsBalance{}, &domain.InsufficientPointsError{Available: current.AvailablePoints, Requested: amount}
}

// ---------------------------------------------------------------------------
// Transactions
// ---------------------------------------------------------------------------

// InsertTransaction records tx. For earn_rating transactions it reports
// inserted=false when the review was already rewarded.
func (r *Repo) InsertTransaction(ctx context.Context, tx *domain.PointsTransaction) (inserted bool, err error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, insertTransactionSQL,
		tx.ID, string(tx.Identity), tx.PointsAmount, string(tx.Type), tx.ReviewRef, tx.Description, tx.CreatedAt.UTC(),
	)
	if err != nil {
		return false, postgres.MapError(err, "points_transaction", tx.ID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListTransactions returns the transactions of identity, newest first, and
// the total matching the filter.
func (r *Repo) ListTransactions(ctx context.Context, identity domain.RaterIdentity, f domain.TransactionFilter) ([]*domain.PointsTransaction, int, error) {
	where := squirrel.And{squirrel.Eq{"identity": string(identity)}}
	if f.Type != nil {
		where = append(where, squirrel.Eq{"type": string(*f.Type)})
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").From("points_transactions").Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count transactions: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	listSQL, listArgs, err := postgres.Builder().
		Select(transactionColumns...).From("points_transactions").Where(where).
		OrderBy("created_at DESC", "id").
		Limit(postgres.EffectiveLimit(f.Limit, defaultListLimit, maxListLimit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list transactions: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*domain.PointsTransaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, total, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBalance(row rowScanner) (domain.PointsBalance, error) {
	var (
		b        domain.PointsBalance
		identity string
	)
	if err := row.Scan(&identity, &b.AvailablePoints, &b.LifetimePoints, &b.UpdatedAt); err != nil {
		return domain.PointsBalance{}, err
	}
	b.Identity = domain.RaterIdentity(identity)
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func scanTransaction(row rowScanner) (*domain.PointsTransaction, error) {
	var (
		tx       domain.PointsTransaction
		identity string
		typ      string
	)
	if err := row.Scan(&tx.ID, &identity, &tx.PointsAmount, &typ, &tx.ReviewRef, &tx.Description, &tx.CreatedAt); err != nil {
		return nil, err
	}
	tx.Identity = domain.RaterIdentity(identity)
	tx.Type = domain.TransactionType(typ)
	tx.CreatedAt = tx.CreatedAt.UTC()
	return &tx, nil
}
