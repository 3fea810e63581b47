// Package subject implements storage of rated subjects and their scan codes.
package subject

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/scanrate-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const getSubjectSQL = `
SELECT id, kind, name, active, created_at FROM subjects WHERE id = $1`

const createSubjectSQL = `
INSERT INTO subjects (id, kind, name, active, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, kind, name, active, created_at`

const createCodeSQL = `
INSERT INTO scan_codes (id, code, subject_id, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id, code, subject_id, scan_count, last_scanned_at, created_at`

const getTargetSQL = `
SELECT c.id, c.code, c.subject_id, c.scan_count, c.last_scanned_at, c.created_at,
       s.id, s.kind, s.name, s.active, s.created_at
FROM scan_codes c
JOIN subjects s ON s.id = c.subject_id
WHERE c.code = $1`

// incrementScanSQL only counts a code against the subject it points at.
const incrementScanSQL = `
UPDATE scan_codes
SET scan_count = scan_count + 1, last_scanned_at = $3
WHERE id = $1 AND subject_id = $2`

// Repo provides subject and scan code persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new subject repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetSubject returns a subject by id.
func (r *Repo) GetSubject(ctx context.Context, id string) (*domain.Subject, error) {
	s, err := scanSubject(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getSubjectSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "subject", id)
	}
	return s, nil
}

// CreateSubject stores a new subject.
func (r *Repo) CreateSubject(ctx context.Context, s *domain.Subject) (*domain.Subject, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createSubjectSQL,
		s.ID, string(s.Kind), s.Name, s.Active, s.CreatedAt.UTC(),
	)
	created, err := scanSubject(row)
	if err != nil {
		return nil, postgres.MapError(err, "subject", s.ID)
	}
	return created, nil
}

// CreateCode stores a new scan code for an existing subject.
func (r *Repo) CreateCode(ctx context.Context, c *domain.ScanCode) (*domain.ScanCode, error) {
	var created domain.ScanCode
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, createCodeSQL,
		c.ID, c.Code, c.SubjectID, c.CreatedAt.UTC(),
	).Scan(&created.ID, &created.Code, &created.SubjectID, &created.ScanCount, &created.LastScannedAt, &created.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "scan_code", c.Code)
	}
	return &created, nil
}

// GetTarget resolves a public scan code to the code and its subject.
func (r *Repo) GetTarget(ctx context.Context, code string) (*domain.ScanTarget, error) {
	var (
		t    domain.ScanTarget
		kind string
	)
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getTargetSQL, code).Scan(
		&t.Code.ID, &t.Code.Code, &t.Code.SubjectID, &t.Code.ScanCount, &t.Code.LastScannedAt, &t.Code.CreatedAt,
		&t.Subject.ID, &kind, &t.Subject.Name, &t.Subject.Active, &t.Subject.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "scan_code", code)
	}
	t.Subject.Kind = domain.SubjectKind(kind)
	return &t, nil
}

// IncrementScan bumps the usage counter of a code that led to an accepted
// review of subjectID. A code pointing at another subject is left untouched
// and reported as not found.
func (r *Repo) IncrementScan(ctx context.Context, codeID uuid.UUID, subjectID string, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, incrementScanSQL, codeID, subjectID, at.UTC())
	if err != nil {
		return postgres.MapError(err, "scan_code", codeID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("scan_code %s: %w", codeID, domain.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var (
		s    domain.Subject
		kind string
	)
	if err := row.Scan(&s.ID, &kind, &s.Name, &s.Active, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Kind = domain.SubjectKind(kind)
	return &s, nil
}
