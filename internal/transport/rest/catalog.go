package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/catalog"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
)

type catalogService interface {
	ResolveCode(ctx context.Context, code string) (*domain.ScanTarget, error)
	RegisterSubject(ctx context.Context, input catalog.RegisterSubjectInput) (*domain.Subject, error)
	IssueCode(ctx context.Context, subjectID string) (*domain.ScanCode, error)
}

// CatalogHandler serves scan code resolution and subject administration.
type CatalogHandler struct {
	svc      catalogService
	validate *requestValidator
	log      *slog.Logger
}

func NewCatalogHandler(svc catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, validate: newRequestValidator(), log: logger.With("handler", "catalog")}
}

// ResolveCode handles GET /api/v1/codes/{code}.
func (h *CatalogHandler) ResolveCode(w http.ResponseWriter, r *http.Request) {
	target, err := h.svc.ResolveCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.NewScanTargetResponse(target))
}

// RegisterSubject handles POST /api/v1/subjects (admin).
func (h *CatalogHandler) RegisterSubject(w http.ResponseWriter, r *http.Request) {
	var req wire.RegisterSubjectRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	subject, err := h.svc.RegisterSubject(r.Context(), catalog.RegisterSubjectInput{
		ID:   req.ID,
		Kind: req.Kind,
		Name: req.Name,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, wire.NewSubjectResponse(*subject))
}

// IssueCode handles POST /api/v1/subjects/{subjectID}/codes (admin).
func (h *CatalogHandler) IssueCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.svc.IssueCode(r.Context(), chi.URLParam(r, "subjectID"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, wire.NewScanCodeResponse(*code))
}
