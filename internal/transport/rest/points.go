package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
	"github.com/heartmarshall/scanrate-backend/internal/service/ledger"
	"github.com/heartmarshall/scanrate-backend/internal/transport/wire"
)

type pointsService interface {
	Balance(ctx context.Context, identity string) (domain.PointsBalance, error)
	Transactions(ctx context.Context, input ledger.TransactionsInput) ([]*domain.PointsTransaction, int, error)
	Spend(ctx context.Context, input ledger.SpendInput) (domain.PointsBalance, error)
}

// PointsHandler serves balances and transaction history.
type PointsHandler struct {
	svc      pointsService
	validate *requestValidator
	log      *slog.Logger
}

func NewPointsHandler(svc pointsService, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{svc: svc, validate: newRequestValidator(), log: logger.With("handler", "points")}
}

// Balance handles GET /api/v1/points/{identity}.
func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.svc.Balance(r.Context(), chi.URLParam(r, "identity"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.NewBalanceResponse(balance))
}

// Transactions handles GET /api/v1/points/{identity}/transactions.
func (h *PointsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
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

	txs, total, err := h.svc.Transactions(r.Context(), ledger.TransactionsInput{
		Identity: chi.URLParam(r, "identity"),
		Type:     r.URL.Query().Get("type"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.NewTransactionPage(txs, total))
}

// Spend handles POST /api/v1/points/{identity}/spend.
func (h *PointsHandler) Spend(w http.ResponseWriter, r *http.Request) {
	var req wire.SpendRequest
	if err := decodeJSON(w, r, h.validate, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	balance, err := h.svc.Spend(r.Context(), ledger.SpendInput{
		Identity:    chi.URLParam(r, "identity"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.NewBalanceResponse(balance))
}
