package dto

import "gold-ledger/internal/models"

// CreateCustomerRequest represents the request to create a new customer
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// CustomerPage is one page of the customer list
type CustomerPage struct {
	Customers []models.Customer `json:"customers"`
	Count     int64             `json:"count"`
}
