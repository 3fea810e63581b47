package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubjectKind is the category of a rated entity.
type SubjectKind string

const (
	SubjectVehicle  SubjectKind = "VEHICLE"
	SubjectBusiness SubjectKind = "BUSINESS"
	SubjectCampaign SubjectKind = "CAMPAIGN"
)

func (k SubjectKind) String() string { return string(k) }

func (k SubjectKind) IsValid() bool {
	switch k {
	case SubjectVehicle, SubjectBusiness, SubjectCampaign:
		return true
	}
	return false
}

// Subject is the entity being rated.
type Subject struct {
	ID        string
	Kind      SubjectKind
	Name      string
	Active    bool
	CreatedAt time.Time
}

// ScanCode is a printed code pointing at a subject. ScanCount counts accepted
// reviews that arrived through the code.
type ScanCode struct {
	ID            uuid.UUID
	Code          string
	SubjectID     string
	ScanCount     int
	LastScannedAt *time.Time
	CreatedAt     time.Time
}

// ScanTarget is a resolved scan code together with its subject.
type ScanTarget struct {
	Code    ScanCode
	Subject Subject
}
