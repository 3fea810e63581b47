// Package review implements the Review repository using PostgreSQL.
// The duplicate window and the daily cap are enforced by the reviews table
// itself (a unique constraint on the hour bucket and a BEFORE INSERT trigger);
// this package translates their violations into domain errors.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var reviewColumns = []string{
	"id", "submission_id", "subject_id", "code_id", "rater_identity", "stars",
	"tags", "tag_ratings", "comment", "photo_urls", "surface", "captured_at", "created_at",
}

const (
	constraintSubjectFK = "reviews_subject_id_fkey"
	constraintCodeFK    = "reviews_code_id_fkey"
)

const countForDaySQL = `
SELECT count(*) FROM reviews
WHERE rater_identity = $1 AND review_day = $2::date`

const getDailyCapSQL = `SELECT daily_review_cap FROM review_limits WHERE id = 1`

const setDailyCapSQL = `
INSERT INTO review_limits (id, daily_review_cap, updated_at)
VALUES (1, $1, now())
ON CONFLICT (id) DO UPDATE SET daily_review_cap = EXCLUDED.daily_review_cap, updated_at = now()`

// Repo provides review persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new review repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create stores r. If a review with the same submission id is already stored,
// nothing is written and the stored review is returned with replayed=true.
//
// Rejections:
//   - *domain.DuplicateError when the rater already reviewed the subject in
//     the same UTC hour bucket;
//   - *domain.RateLimitError when the rater reached the daily cap;
//   - *domain.ValidationError when the subject or scan code does not exist,
//     or the subject is inactive.
func (r *Repo) Create(ctx context.Context, rv *domain.Review) (stored *domain.Review, replayed bool, err error) {
	ratings, err := json.Marshal(nonNilRatings(rv.TagRatings))
	if err != nil {
		return nil, false, fmt.Errorf("marshal tag ratings: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert("reviews").
		Columns(reviewColumns...).
		Values(
			rv.ID, rv.SubmissionID, rv.SubjectID, rv.CodeID, string(rv.RaterIdentity), rv.Stars,
			nonNil(rv.Tags), ratings, rv.Comment, nonNil(rv.PhotoURLs), string(rv.Surface), rv.CapturedAt, rv.CreatedAt,
		).
		Suffix("ON CONFLICT (submission_id) DO NOTHING RETURNING " + strings.Join(reviewColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("build insert review: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	stored, err = scanReview(q.QueryRow(ctx, query, args...))
	if err == nil {
		return stored, false, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		existing, getErr := r.GetBySubmissionID(ctx, rv.SubmissionID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, true, nil
	}

	return nil, false, mapInsertError(err, rv)
}

// SetDailyCap stores the per-identity daily review cap read by the trigger.
func (r *Repo) SetDailyCap(ctx context.Context, limit int) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, setDailyCapSQL, limit); err != nil {
		return postgres.MapError(err, "review_limits", 1)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a review by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "review", id)
}

// GetBySubmissionID returns the review stored for a client submission id.
func (r *Repo) GetBySubmissionID(ctx context.Context, submissionID uuid.UUID) (*domain.Review, error) {
	return r.getOne(ctx, squirrel.Eq{"submission_id": submissionID}, "submission", submissionID)
}

// ListBySubject returns reviews of a subject, newest first, with the total.
func (r *Repo) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]*domain.Review, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").From("reviews").
		Where(squirrel.Eq{"subject_id": subjectID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count reviews: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews by subject: %w", err)
	}

	if offset < 0 {
		offset = 0
	}
	listSQL, listArgs, err := postgres.Builder().
		Select(reviewColumns...).From("reviews").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("created_at DESC", "id").
		Limit(postgres.EffectiveLimit(limit, defaultListLimit, maxListLimit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reviews: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews by subject: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reviews: %w", err)
	}

	return reviews, total, nil
}

// CountForDay returns how many reviews identity had accepted on the UTC day
// containing day.
func (r *Repo) CountForDay(ctx context.Context, identity domain.RaterIdentity, day time.Time) (int, error) {
	var n int
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, countForDaySQL, string(identity), domain.ReviewDay(day)).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reviews for day: %w", err)
	}
	return n, nil
}

// DailyCap returns the stored daily cap, or the default when unset.
func (r *Repo) DailyCap(ctx context.Context) (int, error) {
	var limit int
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getDailyCapSQL).Scan(&limit)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultDailyReviewCap, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get daily cap: %w", err)
	}
	return limit, nil
}

func (r *Repo) getOne(ctx context.Context, where squirrel.Eq, entity string, id uuid.UUID) (*domain.Review, error) {
	query, args, err := postgres.Builder().
		Select(reviewColumns...).From("reviews").Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get %s: %w", entity, err)
	}

	rv, err := scanReview(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return rv, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func mapInsertError(err error, rv *domain.Review) error {
	if postgres.IsUniqueViolation(err, postgres.ConstraintReviewHourWindow) {
		return &domain.DuplicateError{Identity: rv.RaterIdentity, SubjectID: rv.SubjectID}
	}
	if rl, ok := postgres.DailyCapFromError(err); ok {
		return rl
	}
	if pgErr, ok := postgres.PgError(err); ok && pgErr.Code == postgres.CodeInactiveSubject {
		return domain.NewValidationError("subject_id", "subject is not accepting reviews")
	}
	if pgErr, ok := postgres.PgError(err); ok && pgErr.Code == postgres.CodeForeignKeyViolation {
		switch pgErr.ConstraintName {
		case constraintSubjectFK:
			return domain.NewValidationError("subject_id", "unknown subject")
		case constraintCodeFK:
			return domain.NewValidationError("code_id", "unknown scan code")
		}
	}
	return postgres.MapError(err, "review", rv.SubmissionID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var (
		rv       domain.Review
		identity string
		surface  string
		ratings  []byte
	)

	err := row.Scan(
		&rv.ID, &rv.SubmissionID, &rv.SubjectID, &rv.CodeID, &identity, &rv.Stars,
		&rv.Tags, &ratings, &rv.Comment, &rv.PhotoURLs, &surface, &rv.CapturedAt, &rv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rv.RaterIdentity = domain.RaterIdentity(identity)
	rv.Surface = domain.Surface(surface)
	rv.TagRatings = map[string]int{}
	if len(ratings) > 0 {
		if err := json.Unmarshal(ratings, &rv.TagRatings); err != nil {
			return nil, fmt.Errorf("review %s: unmarshal tag ratings: %w", rv.ID, err)
		}
	}
	if rv.Tags == nil {
		rv.Tags = []string{}
	}
	if rv.PhotoURLs == nil {
		rv.PhotoURLs = []string{}
	}
	rv.CreatedAt = rv.CreatedAt.UTC()
	if rv.CapturedAt != nil {
		at := rv.CapturedAt.UTC()
		rv.CapturedAt = &at
	}

	return &rv, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilRatings(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
