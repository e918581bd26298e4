package models

import "time"

// FilterState is the set of filter selections made on the transaction list.
// Nil pointers and a blank search term mean "not filtered".
type FilterState struct {
	SearchTerm    string
	Type          *TransactionType
	PaymentMethod *PaymentMethod
	DateRange     DateRange
}

// DateRange bounds created_at; either end may be open
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether no filter is selected
func (s FilterState) IsZero() bool {
	return s.SearchTerm == "" && s.Type == nil && s.PaymentMethod == nil &&
		s.DateRange.Start == nil && s.DateRange.End == nil
}

// Clone returns a deep copy so callers can hand state across goroutines
func (s FilterState) Clone() FilterState {
	out := FilterState{SearchTerm: s.SearchTerm}
	if s.Type != nil {
		out.Type = s.Type.Ptr()
	}
	if s.PaymentMethod != nil {
		out.PaymentMethod = s.PaymentMethod.Ptr()
	}
	if s.DateRange.Start != nil {
		start := *s.DateRange.Start
		out.DateRange.Start = &start
	}
	if s.DateRange.End != nil {
		end := *s.DateRange.End
		out.DateRange.End = &end
	}
	return out
}
