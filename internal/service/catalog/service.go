// Package catalog resolves scan codes to rated subjects and lets admins
// register subjects and issue codes for them.
package catalog

import (
	"context"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Printed codes avoid look-alike characters.
const (
	codeAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"
	codeLength   = 10
)

type subjectRepo interface {
	GetSubject(ctx context.Context, id string) (*domain.Subject, error)
	CreateSubject(ctx context.Context, s *domain.Subject) (*domain.Subject, error)
	CreateCode(ctx context.Context, c *domain.ScanCode) (*domain.ScanCode, error)
	GetTarget(ctx context.Context, code string) (*domain.ScanTarget, error)
}

// Service provides catalog operations.
type Service struct {
	subjects subjectRepo
	newCode  func() (string, error)
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Catalog service.
func NewService(log *slog.Logger, subjects subjectRepo) *Service {
	return &Service{
		subjects: subjects,
		newCode:  func() (string, error) { return gonanoid.Generate(codeAlphabet, codeLength) },
		now:      time.Now,
		log:      log.With("service", "catalog"),
	}
}
