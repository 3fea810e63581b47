package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPointsPerRating is awarded when no points configuration row exists.
const DefaultPointsPerRating = 10

// DefaultDailyReviewCap applies when no review limits row exists.
const DefaultDailyReviewCap = 4

// TransactionType classifies a points movement.
type TransactionType string

const (
	TransactionEarnRating TransactionType = "earn_rating"
	TransactionSpend      TransactionType = "spend"
)

func (t TransactionType) String() string { return string(t) }

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionEarnRating, TransactionSpend:
		return true
	}
	return false
}

// PointsBalance is the loyalty balance of one rater identity.
type PointsBalance struct {
	Identity        RaterIdentity
	AvailablePoints int
	LifetimePoints  int
	UpdatedAt       time.Time
}

// ZeroBalance is the balance of an identity that has never earned points.
func ZeroBalance(identity RaterIdentity) PointsBalance {
	return PointsBalance{Identity: identity}
}

// Earn returns the balance after crediting amount.
func (b PointsBalance) Earn(amount int, now time.Time) PointsBalance {
	b.AvailablePoints += amount
	b.LifetimePoints += amount
	b.UpdatedAt = now
	return b
}

// Spend returns the balance after debiting amount. Lifetime points are kept.
func (b PointsBalance) Spend(amount int, now time.Time) (PointsBalance, error) {
	if amount > b.AvailablePoints {
		return b, &InsufficientPointsError{Available: b.AvailablePoints, Requested: amount}
	}
	b.AvailablePoints -= amount
	b.UpdatedAt = now
	return b, nil
}

// PointsTransaction is the audit record of a points movement. PointsAmount is
// positive for earnings and negative for spends.
type PointsTransaction struct {
	ID           uuid.UUID
	Identity     RaterIdentity
	PointsAmount int
	Type         TransactionType
	ReviewRef    *uuid.UUID
	Description  string
	CreatedAt    time.Time
}

// PointsConfig holds the server-side reward settings.
type PointsConfig struct {
	PointsPerRating int
	DailyReviewCap  int
	UpdatedAt       time.Time
}

// DefaultPointsConfig returns the configuration used when no row exists.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		PointsPerRating: DefaultPointsPerRating,
		DailyReviewCap:  DefaultDailyReviewCap,
	}
}

// TransactionFilter narrows a transaction listing. Limit <= 0 selects the
// default page size.
type TransactionFilter struct {
	Type   *TransactionType
	Limit  int
	Offset int
}
