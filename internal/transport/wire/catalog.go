package wire

import (
	"time"

	"github.com/heartmarshall/scanrate-backend/internal/domain"
)

type RegisterSubjectRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Kind string `json:"kind" validate:"required,oneof=VEHICLE BUSINESS CAMPAIGN"`
	Name string `json:"name" validate:"required,max=120"`
}

type SubjectResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSubjectResponse(s domain.Subject) SubjectResponse {
	return SubjectResponse{
		ID:        s.ID,
		Kind:      s.Kind.String(),
		Name:      s.Name,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}

type ScanCodeResponse struct {
	ID            string     `json:"id"`
	Code          string     `json:"code"`
	SubjectID     string     `json:"subject_id"`
	ScanCount     int        `json:"scan_count"`
	LastScannedAt *time.Time `json:"last_scanned_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func NewScanCodeResponse(c domain.ScanCode) ScanCodeResponse {
	return ScanCodeResponse{
		ID:            c.ID.String(),
		Code:          c.Code,
		SubjectID:     c.SubjectID,
		ScanCount:     c.ScanCount,
		LastScannedAt: c.LastScannedAt,
		CreatedAt:     c.CreatedAt,
	}
}

// ScanTargetResponse is what a client needs to start a review after a scan.
type ScanTargetResponse struct {
	Code    ScanCodeResponse `json:"code"`
	Subject SubjectResponse  `json:"subject"`
}

func NewScanTargetResponse(t *domain.ScanTarget) ScanTargetResponse {
	return ScanTargetResponse{
		Code:    NewScanCodeResponse(t.Code),
		Subject: NewSubjectResponse(t.Subject),
	}
}
