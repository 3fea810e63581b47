package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

const maxNameLength = 120

// RegisterSubjectInput describes a new rated subject.
type RegisterSubjectInput struct {
	ID   string
	Kind string
	Name string
}

func (i RegisterSubjectInput) Validate() error {
	var errs []domain.FieldError

	if err := domain.ValidateSubjectID(i.ID); err != nil {
		errs = append(errs, domain.FieldError{Field: "id", Message: "malformed subject id"})
	}
	if !domain.SubjectKind(i.Kind).IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "must be VEHICLE, BUSINESS or CAMPAIGN"})
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > maxNameLength {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long (max 120)"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
