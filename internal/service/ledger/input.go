package ledger

import (
	"strings"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const (
	maxDescriptionLength = 200
	maxPageSize          = 200
)

// TransactionsInput selects a page of an identity's transactions.
type TransactionsInput struct {
	Identity string
	Type     string
	Limit    int
	Offset   int
}

func (i TransactionsInput) Validate() error {
	var errs []domain.FieldError

	if _, err := domain.ParseRaterIdentity(i.Identity); err != nil {
		errs = append(errs, domain.FieldError{Field: "identity", Message: "malformed identity"})
	}
	if i.Type != "" && !domain.TransactionType(i.Type).IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "must be earn_rating or spend"})
	}
	if i.Limit < 0 || i.Limit > maxPageSize {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// SpendInput debits points from an identity's balance.
type SpendInput struct {
	Identity    string
	Amount      int
	Description string
}

func (i SpendInput) Validate(maxSpend int) error {
	var errs []domain.FieldError

	if _, err := domain.ParseRaterIdentity(i.Identity); err != nil {
		errs = append(errs, domain.FieldError{Field: "identity", Message: "malformed identity"})
	}
	if i.Amount <= 0 || i.Amount > maxSpend {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "out of range"})
	}
	if len(strings.TrimSpace(i.Description)) > maxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "too long (max 200)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
