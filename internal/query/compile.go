// Package query turns transaction-list filter selections into the clause list
// the filter endpoint understands, and checks incoming clause lists on the server side.
package query

import (
	"strings"

	"gold-ledger/internal/models"
)

// Compile converts a filter state into an ordered clause list.
// Clause order is fixed: type, payment method, date start, date end, search.
// Unset selections produce no clause, so an empty state compiles to an empty list.
func Compile(state models.FilterState) []models.FilterClause {
	clauses := make([]models.FilterClause, 0, 5)

	if state.Type != nil {
		clauses = append(clauses, models.Eq(models.FieldType, string(*state.Type)))
	}

	if state.PaymentMethod != nil {
		clauses = append(clauses, models.Eq(models.FieldPaymentMethod, string(*state.PaymentMethod)))
	}

	if state.DateRange.Start != nil {
		clauses = append(clauses, models.Gte(models.FieldCreatedAt, *state.DateRange.Start))
	}

	if state.DateRange.End != nil {
		clauses = append(clauses, models.Lte(models.FieldCreatedAt, *state.DateRange.End))
	}

	if term := strings.TrimSpace(state.SearchTerm); term != "" {
		clauses = append(clauses, models.Or(models.FieldSearch,
			models.SubClause{Field: models.SubFieldCustomerName, Value: term},
			models.SubClause{Field: models.SubFieldDescription, Value: term},
		))
	}

	return clauses
}
