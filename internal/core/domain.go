package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Subscription is one tracked recurring payment. ID and CreatedAt are
// assigned by the store on insert; the remaining fields are validated once at
// the construction boundary and replaced atomically on update.
//
// RenewalDate is kept in its stored ISO "YYYY-MM-DD" form; the aggregation
// engine parses it into a Date before any comparison.
type Subscription struct {
	ID            int64
	Name          string
	Category      string
	Cost          Money
	RenewalDate   string
	PaymentMethod string
	CreatedAt     time.Time
}

// ValidateName requires a trimmed length of 2-100 characters.
func ValidateName(s string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n < 2 || n > 100 {
		return ErrInvalidName
	}
	return nil
}

// ValidateCategory requires a trimmed length of 2-50 characters.
func ValidateCategory(s string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n < 2 || n > 50 {
		return ErrInvalidCategory
	}
	return nil
}

// ValidatePaymentMethod requires a trimmed length of 2-50 characters.
func ValidatePaymentMethod(s string) error {
	if n := utf8.RuneCountInString(strings.TrimSpace(s)); n < 2 || n > 50 {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// Validate checks every mutable field. The store itself does not re-validate.
func (s Subscription) Validate() error {
	if err := ValidateName(s.Name); err != nil {
		return err
	}
	if err := ValidateCategory(s.Category); err != nil {
		return err
	}
	if err := s.Cost.Validate(); err != nil {
		return err
	}
	if _, err := ParseDate(s.RenewalDate); err != nil {
		return err
	}
	if err := ValidatePaymentMethod(s.PaymentMethod); err != nil {
		return err
	}
	return nil
}
