package console

import (
	"context"

	"gold-ledger/internal/models"
	"gold-ledger/internal/pagination"
)

// PageLoader fetches one page of an unfiltered list
type PageLoader[T any] func(ctx context.Context, page pagination.PageRequest) (*models.PageResult[T], error)

// EntityList is a paged list without filters, used for stores and customers
type EntityList[T any] struct {
	*controller[T]
}

func NewEntityList[T any](name string, load PageLoader[T], session Session, nav Navigator, pageSize int, opts ...Option) *EntityList[T] {
	fetch := func(ctx context.Context, _ []models.FilterClause, page pagination.PageRequest) (*models.PageResult[T], error) {
		return load(ctx, page)
	}
	return &EntityList[T]{controller: newController[T](name, fetch, session, nav, pageSize, opts)}
}

func (l *EntityList[T]) Load(ctx context.Context) error {
	return l.complete(ctx, l.beginCurrent(nil))
}

func (l *EntityList[T]) SetPage(ctx context.Context, page int) error {
	if !l.setPage(page) {
		return nil
	}
	return l.Load(ctx)
}

func (l *EntityList[T]) SetPageSize(ctx context.Context, size int) error {
	if !l.setPageSize(size) {
		return nil
	}
	return l.Load(ctx)
}

func (l *EntityList[T]) Retry(ctx context.Context) error {
	return l.retry(ctx)
}

func (l *EntityList[T]) View() PageView[T] {
	return l.snapshot()
}
