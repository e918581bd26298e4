package query

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gold-ledger/internal/models"
)

// MaxClauses bounds the size of one filter request
const MaxClauses = 16

var ErrInvalidClause = errors.New("invalid filter clause")

// ClauseError describes why one clause of a filter request was rejected
type ClauseError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ClauseError) Error() string {
	return fmt.Sprintf("clause %d (%s): %s", e.Index, e.Field, e.Reason)
}

func (e *ClauseError) Unwrap() error {
	return ErrInvalidClause
}

var allowedOperations = map[string][]models.FilterOperation{
	models.FieldType:          {models.OpEq},
	models.FieldPaymentMethod: {models.OpEq},
	models.FieldCreatedAt:     {models.OpGte, models.OpLte},
	models.FieldSearch:        {models.OpOr},
}

var allowedSubFields = map[string]bool{
	models.SubFieldCustomerName: true,
	models.SubFieldDescription:  true,
}

// Validate checks a clause list against the supported filter vocabulary.
func Validate(clauses []models.FilterClause) error {
	if len(clauses) > MaxClauses {
		return &ClauseError{Index: MaxClauses, Field: "filters", Reason: fmt.Sprintf("at most %d clauses are allowed", MaxClauses)}
	}

	for i, c := range clauses {
		if err := validateClause(i, c); err != nil {
			return err
		}
	}
	return nil
}

func validateClause(i int, c models.FilterClause) error {
	reject := func(reason string) error {
		return &ClauseError{Index: i, Field: c.Field, Reason: reason}
	}

	ops, ok := allowedOperations[c.Field]
	if !ok {
		return reject("unsupported field")
	}
	if !containsOp(ops, c.Operation) {
		return reject(fmt.Sprintf("operation %q not allowed", c.Operation))
	}

	if c.Operation == models.OpOr {
		if !c.Value.IsList() || len(c.Value.Any) == 0 {
			return reject("or requires a non-empty list of sub-clauses")
		}
		for _, sub := range c.Value.Any {
			if !allowedSubFields[sub.Field] {
				return reject(fmt.Sprintf("unsupported search field %q", sub.Field))
			}
			if strings.TrimSpace(sub.Value) == "" {
				return reject("search value is empty")
			}
		}
		return nil
	}

	if c.Value.IsList() {
		return reject("sub-clauses are only allowed with or")
	}
	if strings.TrimSpace(c.Value.Scalar) == "" {
		return reject("value is empty")
	}

	switch c.Field {
	case models.FieldType:
		if !models.TransactionType(c.Value.Scalar).IsValid() {
			return reject("must be buy or sell")
		}
	case models.FieldPaymentMethod:
		if !models.PaymentMethod(c.Value.Scalar).IsValid() {
			return reject("unknown payment method")
		}
	case models.FieldCreatedAt:
		if _, _, err := ParseDate(c.Value.Scalar); err != nil {
			return reject("date must be YYYY-MM-DD or RFC 3339")
		}
	}
	return nil
}

// ParseDate reads a date clause value. dateOnly reports a calendar date without a time part.
func ParseDate(value string) (t time.Time, dateOnly bool, err error) {
	if t, err = time.Parse(models.FilterDateLayout, value); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, err
}

func containsOp(ops []models.FilterOperation, op models.FilterOperation) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
