package models

// PageResult is one page of a list plus the size of the whole filtered set
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
}
