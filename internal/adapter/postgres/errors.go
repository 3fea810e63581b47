package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// SQLSTATE codes and constraint names the repositories react to. Errors are
// classified by these structured fields, never by message text.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeCheckViolation      = "23514"

	// CodeDailyCapReached is raised by the reviews_daily_cap trigger. DETAIL
	// carries the already-submitted count and HINT the cap.
	CodeDailyCapReached = "RV429"

	// CodeInactiveSubject is raised by the reviews_active_subject trigger.
	CodeInactiveSubject = "RV410"

	ConstraintReviewHourWindow = "reviews_rater_subject_hour_key"
	ConstraintReviewSubmission = "reviews_submission_id_key"
	ConstraintEarnPerReview    = "points_transactions_earn_review_key"
)

// PgError returns the underlying *pgconn.PgError, if any.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err violates the named unique constraint.
// An empty constraint matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// DailyCapFromError extracts the structured fields of a daily cap rejection.
func DailyCapFromError(err error) (*domain.RateLimitError, bool) {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != CodeDailyCapReached {
		return nil, false
	}
	count, cerr := strconv.Atoi(pgErr.Detail)
	if cerr != nil {
		count = -1
	}
	limit, lerr := strconv.Atoi(pgErr.Hint)
	if lerr != nil {
		limit = domain.DefaultDailyReviewCap
	}
	return &domain.RateLimitError{Count: count, Limit: limit}, true
}

// MapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	if pgErr, ok := PgError(err); ok {
		switch pgErr.Code {
		case CodeUniqueViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrAlreadyExists)
		case CodeForeignKeyViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
		case CodeCheckViolation:
			return fmt.Errorf("%s %v: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
