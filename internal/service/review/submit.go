package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/pkg/ctxutil"
)

// Submit passes one draft through the gate.
//
// Terminal rejections are returned as *domain.ValidationError,
// *domain.DuplicateError or *domain.RateLimitError. A draft whose submission
// id is already stored is not inserted again: the stored review is returned
// with status REPLAYED.
//
// Points are awarded after the review is stored. An award failure is logged
// and never returned; the review stands.
func (s *Service) Submit(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error) {
	if err := s.resolveIdentity(ctx, &draft); err != nil {
		return nil, err
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	stored, replayed, err := s.reviews.Create(ctx, draft.ToReview(uuid.New(), now))
	if err != nil {
		if domain.IsTerminal(err) {
			s.log.InfoContext(ctx, "review rejected",
				slog.String("identity", draft.RaterIdentity.String()),
				slog.String("subject_id", draft.SubjectID),
				slog.String("reason", err.Error()),
			)
			return nil, err
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	// A submission id names one rater's review; anyone else reusing it gets
	// nothing back.
	if replayed && stored.RaterIdentity != draft.RaterIdentity {
		s.log.WarnContext(ctx, "submission id reused by another rater",
			slog.String("submission_id", draft.SubmissionID.String()),
			slog.String("identity", draft.RaterIdentity.String()),
		)
		return nil, domain.NewValidationError("submission_id", "already used by another rater")
	}

	sub := &domain.Submission{
		SubmissionID: stored.SubmissionID,
		Status:       domain.StatusAccepted,
		Review:       stored,
	}
	if replayed {
		sub.Status = domain.StatusReplayed
	}

	if !replayed && stored.CodeID != nil {
		if err := s.scans.IncrementScan(ctx, *stored.CodeID, stored.SubjectID, now); err != nil {
			s.log.WarnContext(ctx, "scan counter not updated",
				slog.String("code_id", stored.CodeID.String()),
				slog.String("error", err.Error()),
			)
		}
	}

	// A replay re-runs the award: it is a no-op when the first attempt
	// succeeded and completes it when the first attempt failed.
	points, err := s.ledger.Award(ctx, stored.RaterIdentity, stored.ID)
	if err != nil {
		s.log.WarnContext(ctx, "points not awarded",
			slog.String("review_id", stored.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	sub.PointsAwarded = points

	s.log.InfoContext(ctx, "review accepted",
		slog.String("review_id", stored.ID.String()),
		slog.String("subject_id", stored.SubjectID),
		slog.String("status", string(sub.Status)),
		slog.Int("points", points),
	)

	return sub, nil
}

// SubmitBatch passes each draft through the gate independently. The returned
// slice has one entry per draft, in order. Terminal rejections are reported as
// REJECTED, any other failure as FAILED.
func (s *Service) SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error) {
	if len(drafts) == 0 {
		return nil, domain.NewValidationError("reviews", "required")
	}
	if len(drafts) > s.maxBatch {
		return nil, domain.NewValidationError("reviews", fmt.Sprintf("too many items (max %d)", s.maxBatch))
	}

	results := make([]domain.Submission, len(drafts))
	for i, draft := range drafts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sub, err := s.Submit(ctx, draft)
		switch {
		case err == nil:
			results[i] = *sub
		case domain.IsTerminal(err):
			results[i] = domain.Submission{SubmissionID: draft.SubmissionID, Status: domain.StatusRejected, Err: err}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			s.log.ErrorContext(ctx, "batch item failed",
				slog.Int("index", i),
				slog.String("submission_id", draft.SubmissionID.String()),
				slog.String("error", err.Error()),
			)
			results[i] = domain.Submission{SubmissionID: draft.SubmissionID, Status: domain.StatusFailed, Err: err}
		}
	}

	return results, nil
}

// resolveIdentity binds the draft to the caller. An authenticated caller
// always rates as their user id. An anonymous caller must present an
// anonymous device token; a bare user id is not accepted without a token.
func (s *Service) resolveIdentity(ctx context.Context, draft *domain.ReviewDraft) error {
	if userID, ok := ctxutil.UserIDFromCtx(ctx); ok {
		draft.RaterIdentity = domain.UserIdentity(userID)
		return nil
	}

	id, err := domain.ParseRaterIdentity(string(draft.RaterIdentity))
	if err != nil {
		return err
	}
	if id.Kind() != domain.IdentityAnonymous {
		return domain.NewValidationError("rater_identity", "user identity requires authentication")
	}
	draft.RaterIdentity = id
	return nil
}
