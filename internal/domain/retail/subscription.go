package retail

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail-inventory/backend/internal/domain/shared"
)

// DateLayout is the wire format of subscription dates
const DateLayout = "2006-01-02"

// Date is a calendar day at UTC midnight
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, shared.NewValidationError("Dates must use the YYYY-MM-DD format")
	}
	return NewDate(t), nil
}

// Today returns the current calendar day
func Today() Date {
	return NewDate(time.Now())
}

// String formats the date as YYYY-MM-DD
func (d Date) String() string {
	return d.Format(DateLayout)
}

// Subscription is the paid period of a retail tenant
type Subscription struct {
	shared.BaseEntity
	RetailID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null;index"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a subscription spanning start..end inclusive
func NewSubscription(retailID uuid.UUID, start, end Date) (*Subscription, error) {
	if retailID == uuid.Nil {
		return nil, shared.NewValidationError("Retail ID cannot be empty")
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}
	return &Subscription{
		BaseEntity: shared.NewBaseEntity(),
		RetailID:   retailID,
		StartDate:  start.Time,
		EndDate:    end.Time,
	}, nil
}

// Extend moves the end date. The new end must still be after the start.
func (s *Subscription) Extend(end Date) error {
	if err := validatePeriod(NewDate(s.StartDate), end); err != nil {
		return err
	}
	s.EndDate = end.Time
	s.Touch()
	return nil
}

// Covers reports whether start <= day <= end
func (s *Subscription) Covers(day Date) bool {
	start, end := NewDate(s.StartDate), NewDate(s.EndDate)
	return !day.Before(start.Time) && !day.After(end.Time)
}

func validatePeriod(start, end Date) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewValidationError("Subscription start and end dates are required")
	}
	if !end.After(start.Time) {
		return shared.NewValidationError("Subscription end date must be after the start date")
	}
	return nil
}
