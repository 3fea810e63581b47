package wire

import (
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

type BalanceResponse struct {
	Identity        string    `json:"identity"`
	AvailablePoints int       `json:"available_points"`
	LifetimePoints  int       `json:"lifetime_points"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

func NewBalanceResponse(b domain.PointsBalance) BalanceResponse {
	return BalanceResponse{
		Identity:        b.Identity.String(),
		AvailablePoints: b.AvailablePoints,
		LifetimePoints:  b.LifetimePoints,
		UpdatedAt:       b.UpdatedAt,
	}
}

type TransactionResponse struct {
	ID           string    `json:"id"`
	PointsAmount int       `json:"points_amount"`
	Type         string    `json:"type"`
	ReviewRef    *string   `json:"review_ref,omitempty"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type TransactionPage struct {
	Items []TransactionResponse `json:"items"`
	Total int                   `json:"total"`
}

func NewTransactionPage(txs []*domain.PointsTransaction, total int) TransactionPage {
	items := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		item := TransactionResponse{
			ID:           tx.ID.String(),
			PointsAmount: tx.PointsAmount,
			Type:         tx.Type.String(),
			Description:  tx.Description,
			CreatedAt:    tx.CreatedAt,
		}
		if tx.ReviewRef != nil {
			ref := tx.ReviewRef.String()
			item.ReviewRef = &ref
		}
		items = append(items, item)
	}
	return TransactionPage{Items: items, Total: total}
}

type SpendRequest struct {
	Amount      int    `json:"amount" validate:"gt=0"`
	Description string `json:"description" validate:"max=200"`
}
