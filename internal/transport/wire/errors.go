package wire

import (
	"errors"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

// Codes used only on the wire.
const (
	CodeAlreadyExists domain.ErrorCode = "ALREADY_EXISTS"
	CodeBadRequest    domain.ErrorCode = "BAD_REQUEST"
)

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is a structured rejection. Clients classify on Code and the typed
// fields, never on Message.
type ErrorBody struct {
	Code      domain.ErrorCode    `json:"code"`
	Message   string              `json:"message"`
	Fields    []domain.FieldError `json:"fields,omitempty"`
	Count     *int                `json:"count,omitempty"`
	Limit     *int                `json:"limit,omitempty"`
	SubjectID string              `json:"subject_id,omitempty"`
	Available *int                `json:"available,omitempty"`
	Requested *int                `json:"requested,omitempty"`
}

// NewErrorBody describes err. Unknown errors are reported as INTERNAL with a
// generic message so internals never leak.
func NewErrorBody(err error) ErrorBody {
	var (
		ve  *domain.ValidationError
		de  *domain.DuplicateError
		rle *domain.RateLimitError
		ipe *domain.InsufficientPointsError
	)
	switch {
	case errors.As(err, &ve):
		return ErrorBody{Code: domain.CodeValidation, Message: "validation failed", Fields: ve.Errors}
	case errors.As(err, &de):
		return ErrorBody{Code: domain.CodeDuplicate, Message: "subject already rated this hour", SubjectID: de.SubjectID}
	case errors.As(err, &rle):
		count, limit := rle.Count, rle.Limit
		return ErrorBody{Code: domain.CodeRateLimited, Message: "daily review limit reached", Count: &count, Limit: &limit}
	case errors.As(err, &ipe):
		available, requested := ipe.Available, ipe.Requested
		return ErrorBody{Code: domain.CodeInsufficient, Message: "insufficient points", Available: &available, Requested: &requested}
	case errors.Is(err, domain.ErrNotFound):
		return ErrorBody{Code: domain.CodeNotFound, Message: "not found"}
	case errors.Is(err, domain.ErrAlreadyExists):
		return ErrorBody{Code: CodeAlreadyExists, Message: "already exists"}
	case errors.Is(err, domain.ErrUnauthorized):
		return ErrorBody{Code: domain.CodeUnauthorized, Message: "authentication required"}
	case errors.Is(err, domain.ErrForbidden):
		return ErrorBody{Code: domain.CodeForbidden, Message: "access denied"}
	default:
		return ErrorBody{Code: domain.CodeInternal, Message: "internal error"}
	}
}

// Err rebuilds the domain error a body describes. Codes without a domain
// counterpart come back as *RemoteError.
func (b ErrorBody) Err() error {
	switch b.Code {
	case domain.CodeValidation:
		if len(b.Fields) == 0 {
			return domain.NewValidationError("request", b.Message)
		}
		return domain.NewValidationErrors(b.Fields)
	case domain.CodeDuplicate:
		return &domain.DuplicateError{SubjectID: b.SubjectID}
	case domain.CodeRateLimited:
		e := &domain.RateLimitError{Count: -1, Limit: domain.DefaultDailyReviewCap}
		if b.Count != nil {
			e.Count = *b.Count
		}
		if b.Limit != nil {
			e.Limit = *b.Limit
		}
		return e
	case domain.CodeInsufficient:
		e := &domain.InsufficientPointsError{}
		if b.Available != nil {
			e.Available = *b.Available
		}
		if b.Requested != nil {
			e.Requested = *b.Requested
		}
		return e
	case domain.CodeNotFound:
		return domain.ErrNotFound
	case domain.CodeUnauthorized:
		return domain.ErrUnauthorized
	case domain.CodeForbidden:
		return domain.ErrForbidden
	default:
		return &RemoteError{Code: b.Code, Message: b.Message}
	}
}

// RemoteError is a server error the client has no domain type for.
type RemoteError struct {
	Code    domain.ErrorCode
	Message string
}

func (e *RemoteError) Error() string { return string(e.Code) + ": " + e.Message }
