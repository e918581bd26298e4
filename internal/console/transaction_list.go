package console

import (
	"context"
	"sync"

	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
	"gold-ledger/internal/query"
)

// TransactionQuerier runs a compiled transaction query
type TransactionQuerier interface {
	QueryTransactions(ctx context.Context, clauses []models.FilterClause, page pagination.PageRequest) (*models.PageResult[models.Transaction], error)
}

// TransactionList is the filtered, paged transaction list
type TransactionList struct {
	*controller[models.Transaction]

	filterMu sync.Mutex
	filters  models.FilterState
}

// TransactionListView adds the active filters to the page view
type TransactionListView struct {
	PageView[models.Transaction]
	Filters models.FilterState
}

func NewTransactionList(querier TransactionQuerier, session Session, nav Navigator, pageSize int, opts ...Option) *TransactionList {
	return &TransactionList{
		controller: newController[models.Transaction]("transactions", querier.QueryTransactions, session, nav, pageSize, opts),
	}
}

// Load fetches the current page with the current filters
func (l *TransactionList) Load(ctx context.Context) error {
	l.filterMu.Lock()
	req := l.stamp()
	l.filterMu.Unlock()

	return l.complete(ctx, req)
}

// Update applies one or more filter changes and fetches once
func (l *TransactionList) Update(ctx context.Context, change func(*models.FilterState)) error {
	l.filterMu.Lock()
	next := l.filters.Clone()
	change(&next)
	l.filters = next
	req := l.stamp()
	l.filterMu.Unlock()

	return l.complete(ctx, req)
}

// ResetFilters clears every filter and returns to the first page with one fetch
func (l *TransactionList) ResetFilters(ctx context.Context) error {
	l.filterMu.Lock()
	l.filters = models.FilterState{}
	l.mu.Lock()
	l.page = l.page.WithPage(0)
	l.mu.Unlock()
	req := l.stamp()
	l.filterMu.Unlock()

	return l.complete(ctx, req)
}

// SetPage moves to another page. Selecting the current page does nothing.
func (l *TransactionList) SetPage(ctx context.Context, page int) error {
	if !l.setPage(page) {
		return nil
	}
	return l.Load(ctx)
}

// SetPageSize changes the page size and returns to the first page
func (l *TransactionList) SetPageSize(ctx context.Context, size int) error {
	if !l.setPageSize(size) {
		return nil
	}
	return l.Load(ctx)
}

// Retry re-sends the last request unchanged
func (l *TransactionList) Retry(ctx context.Context) error {
	return l.retry(ctx)
}

func (l *TransactionList) View() TransactionListView {
	l.filterMu.Lock()
	filters := l.filters.Clone()
	l.filterMu.Unlock()

	return TransactionListView{PageView: l.snapshot(), Filters: filters}
}

// stamp compiles the current filters and page into the latest request. filterMu must
// be held, so the newest stamped request always carries the newest filters and page.
func (l *TransactionList) stamp() request {
	return l.beginCurrent(query.Compile(l.filters))
}
