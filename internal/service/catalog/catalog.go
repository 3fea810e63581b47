package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/pkg/ctxutil"
)

const (
	maxCodeLength  = 64
	maxCodeRetries = 3
)

// ResolveCode returns the subject a scanned code points at. Codes of inactive
// subjects resolve as not found.
func (s *Service) ResolveCode(ctx context.Context, code string) (*domain.ScanTarget, error) {
	code = strings.TrimSpace(code)
	if code == "" || len(code) > maxCodeLength {
		return nil, domain.NewValidationError("code", "malformed scan code")
	}

	target, err := s.subjects.GetTarget(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("resolve code: %w", err)
	}
	if !target.Subject.Active {
		return nil, fmt.Errorf("subject %s inactive: %w", target.Subject.ID, domain.ErrNotFound)
	}
	return target, nil
}

// RegisterSubject creates a new subject. Admin only.
func (s *Service) RegisterSubject(ctx context.Context, input RegisterSubjectInput) (*domain.Subject, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	subject, err := s.subjects.CreateSubject(ctx, &domain.Subject{
		ID:        input.ID,
		Kind:      domain.SubjectKind(input.Kind),
		Name:      strings.TrimSpace(input.Name),
		Active:    true,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	s.log.InfoContext(ctx, "subject registered",
		slog.String("subject_id", subject.ID),
		slog.String("kind", subject.Kind.String()),
	)
	return subject, nil
}

// IssueCode creates a new printable scan code for an existing subject.
// Admin only. A generated code that collides with an existing one is
// regenerated.
func (s *Service) IssueCode(ctx context.Context, subjectID string) (*domain.ScanCode, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if err := domain.ValidateSubjectID(subjectID); err != nil {
		return nil, err
	}

	if _, err := s.subjects.GetSubject(ctx, subjectID); err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}

	for attempt := 1; ; attempt++ {
		code, err := s.newCode()
		if err != nil {
			return nil, fmt.Errorf("generate code: %w", err)
		}

		created, err := s.subjects.CreateCode(ctx, &domain.ScanCode{
			ID:        uuid.New(),
			Code:      code,
			SubjectID: subjectID,
			CreatedAt: s.now().UTC(),
		})
		if err == nil {
			s.log.InfoContext(ctx, "scan code issued",
				slog.String("subject_id", subjectID),
				slog.String("code", created.Code),
			)
			return created, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) || attempt >= maxCodeRetries {
			return nil, fmt.Errorf("create code: %w", err)
		}
	}
}
