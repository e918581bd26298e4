package dto

import "gold-ledger/internal/models"

// CreateStoreRequest opens a store with its starting inventory
type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	TotalGold   string `json:"totalGold" validate:"omitempty,numeric"`
	TotalAmount string `json:"totalAmount" validate:"omitempty,numeric"`
}

// StorePage is one page of the store list
type StorePage struct {
	Stores []models.Store `json:"stores"`
	Count  int64          `json:"count"`
}
