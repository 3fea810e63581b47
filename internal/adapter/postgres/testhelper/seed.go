package testhelper

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return strings.ReplaceAll(uuid.New().String()[:13], "-", "")
}

// NewRater returns a fresh anonymous identity that no other test uses.
func NewRater() domain.RaterIdentity {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:21]
	return domain.NewAnonymousIdentity(random, time.Now())
}

// SeedSubject creates an active VEHICLE subject with a unique id.
func SeedSubject(t *testing.T, pool *pgxpool.Pool) domain.Subject {
	t.Helper()

	subject := domain.Subject{
		ID:        "veh-" + uniqueSuffix(),
		Kind:      domain.SubjectVehicle,
		Name:      "Route 42",
		Active:    true,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO subjects (id, kind, name, active, created_at) VALUES ($1, $2, $3, $4, $5)`,
		subject.ID, string(subject.Kind), subject.Name, subject.Active, subject.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubject: %v", err)
	}
	return subject
}

// SeedScanCode creates a scan code pointing at subjectID.
func SeedScanCode(t *testing.T, pool *pgxpool.Pool, subjectID string) domain.ScanCode {
	t.Helper()

	code := domain.ScanCode{
		ID:        uuid.New(),
		Code:      "qr-" + uniqueSuffix(),
		SubjectID: subjectID,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO scan_codes (id, code, subject_id, created_at) VALUES ($1, $2, $3, $4)`,
		code.ID, code.Code, code.SubjectID, code.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedScanCode: %v", err)
	}
	return code
}

// SeedReview inserts a review row directly, bypassing the repository, at the
// given creation time. The daily cap trigger still applies.
func SeedReview(t *testing.T, pool *pgxpool.Pool, subjectID string, rater domain.RaterIdentity, createdAt time.Time) domain.Review {
	t.Helper()

	review := domain.Review{
		ID:            uuid.New(),
		SubmissionID:  uuid.New(),
		SubjectID:     subjectID,
		RaterIdentity: rater,
		Stars:         4,
		Tags:          []string{},
		TagRatings:    map[string]int{},
		PhotoURLs:     []string{},
		Surface:       domain.SurfaceFull,
		CreatedAt:     createdAt.UTC().Truncate(time.Microsecond),
	}
	ratings, _ := json.Marshal(review.TagRatings)

	_, err := pool.Exec(context.Background(),
		`INSERT INTO reviews (id, submission_id, subject_id, rater_identity, stars, tags, tag_ratings, photo_urls, surface, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		review.ID, review.SubmissionID, review.SubjectID, string(review.RaterIdentity), review.Stars,
		review.Tags, ratings, review.PhotoURLs, string(review.Surface), review.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedReview: %v", err)
	}
	return review
}
