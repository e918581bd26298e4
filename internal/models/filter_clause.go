package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FilterOperation is the comparison a clause applies to its field
type FilterOperation string

const (
	OpEq  FilterOperation = "eq"
	OpGte FilterOperation = "gte"
	OpLte FilterOperation = "lte"
	OpOr  FilterOperation = "or"
)

// Clause field names understood by the transaction filter endpoint
const (
	FieldType          = "type"
	FieldPaymentMethod = "payment_method"
	FieldCreatedAt     = "created_at"
	FieldSearch        = "search"

	SubFieldCustomerName = "customer.name"
	SubFieldDescription  = "description"
)

// FilterDateLayout is the wire format of date clause values
const FilterDateLayout = "2006-01-02"

// FilterClause is one atomic condition of a transaction query.
// Clauses are combined with AND; an OpOr clause carries its alternatives as sub-clauses.
type FilterClause struct {
	Field     string          `json:"field"`
	Operation FilterOperation `json:"operation"`
	Value     ClauseValue     `json:"value"`
}

// SubClause means "Field contains Value" inside an OpOr clause
type SubClause struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ClauseValue holds either a scalar or a list of sub-clauses, never both.
// On the wire it is a JSON string or a JSON array.
type ClauseValue struct {
	Scalar string
	Any    []SubClause
}

// IsList reports whether the value carries sub-clauses
func (v ClauseValue) IsList() bool {
	return v.Any != nil
}

func (v ClauseValue) MarshalJSON() ([]byte, error) {
	if v.Any != nil {
		return json.Marshal(v.Any)
	}
	return json.Marshal(v.Scalar)
}

func (v *ClauseValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		subs := []SubClause{}
		if err := json.Unmarshal(trimmed, &subs); err != nil {
			return fmt.Errorf("invalid sub-clause list: %w", err)
		}
		v.Scalar, v.Any = "", subs
		return nil
	}

	var scalar string
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("clause value must be a string or a list of sub-clauses: %w", err)
	}
	v.Scalar, v.Any = scalar, nil
	return nil
}

// Eq builds an equality clause
func Eq(field, value string) FilterClause {
	return FilterClause{Field: field, Operation: OpEq, Value: ClauseValue{Scalar: value}}
}

// Gte builds an inclusive lower-bound date clause
func Gte(field string, value time.Time) FilterClause {
	return FilterClause{Field: field, Operation: OpGte, Value: ClauseValue{Scalar: value.Format(FilterDateLayout)}}
}

// Lte builds an inclusive upper-bound date clause
func Lte(field string, value time.Time) FilterClause {
	return FilterClause{Field: field, Operation: OpLte, Value: ClauseValue{Scalar: value.Format(FilterDateLayout)}}
}

// Or builds a disjunction of "contains" sub-clauses
func Or(field string, subs ...SubClause) FilterClause {
	return FilterClause{Field: field, Operation: OpOr, Value: ClauseValue{Any: subs}}
}

func (c FilterClause) String() string {
	if c.Value.IsList() {
		return fmt.Sprintf("%s(%s,%v)", c.Operation, c.Field, c.Value.Any)
	}
	return fmt.Sprintf("%s(%s,%s)", c.Operation, c.Field, c.Value.Scalar)
}
