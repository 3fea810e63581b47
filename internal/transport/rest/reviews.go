package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/review"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
	"github.com/heartmarshall/scanrate-backend/pkg/ctxutil"
)

type reviewService interface {
	Submit(ctx context.Context, draft domain.ReviewDraft) (*domain.Submission, error)
	SubmitBatch(ctx context.Context, drafts []domain.ReviewDraft) ([]domain.Submission, error)
	Quota(ctx context.Context, identity string) (*review.Quota, error)
	ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]*domain.Review, int, error)
}

// ReviewHandler serves the acceptance gate.
type ReviewHandler struct {
	svc      reviewService
	validate *requestValidator
	log      *slog.Logger
}

func NewReviewHandler(svc reviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{svc: svc, validate: newRequestValidator(), log: logger.With("handler", "review")}
}

// Submit handles POST /api/v1/reviews. 201 for a new review, 200 when the
// submission id was already stored.
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req wire.ReviewRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	sub, err := h.svc.Submit(r.Context(), req.ToDraft())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	status := http.StatusCreated
	if sub.Status == domain.StatusReplayed {
		status = http.StatusOK
	}
	writeJSON(w, status, wire.NewSubmissionResponse(*sub))
}

// SubmitBatch handles POST /api/v1/reviews/batch. Item outcomes are reported
// individually; the request itself fails only on malformed input.
func (h *ReviewHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var req wire.BatchRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	drafts := make([]domain.ReviewDraft, len(req.Reviews))
	for i, item := range req.Reviews {
		drafts[i] = item.ToDraft()
	}

	subs, err := h.svc.SubmitBatch(r.Context(), drafts)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := wire.BatchResponse{Results: make([]wire.SubmissionResponse, len(subs))}
	for i, s := range subs {
		resp.Results[i] = wire.NewSubmissionResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Quota handles GET /api/v1/reviews/quota?identity=. An authenticated caller
// may omit the identity.
func (h *ReviewHandler) Quota(w http.ResponseWriter, r *http.Request) {
	identity := r.URL.Query().Get("identity")
	if identity == "" {
		if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
			identity = domain.UserIdentity(userID).String()
		}
	}

	q, err := h.svc.Quota(r.Context(), identity)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, wire.QuotaResponse{
		Identity:  q.Identity.String(),
		Day:       q.Day,
		Count:     q.Count,
		Limit:     q.Limit,
		Remaining: q.Remaining,
	})
}

// ListBySubject handles GET /api/v1/subjects/{subjectID}/reviews.
func (h *ReviewHandler) ListBySubject(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	reviews, total, err := h.svc.ListBySubject(r.Context(), chi.URLParam(r, "subjectID"), limit, offset)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	page := wire.ReviewPage{Items: make([]*wire.ReviewResponse, 0, len(reviews)), Total: total}
	for _, rv := range reviews {
		page.Items = append(page.Items, wire.NewReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, page)
}
