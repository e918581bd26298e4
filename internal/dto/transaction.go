package dto

import "gold-ledger/internal/models"

// CreateTransactionRequest records a gold buy or sell
type CreateTransactionRequest struct {
	CustomerID    uint   `json:"customerId" validate:"required,gt=0"`
	StoreName     string `json:"storeName" validate:"required,max=255"`
	Type          string `json:"type" validate:"required,transaction_type"`
	PaymentMethod string `json:"paymentMethod" validate:"required,payment_method"`
	GoldWeight    string `json:"goldWeight" validate:"required,positive_decimal"`
	GoldPrice     string `json:"goldPrice" validate:"required,positive_decimal"`
	Description   string `json:"description" validate:"omitempty,max=500"`
}

// TransactionPage is one page of the filtered transaction list
type TransactionPage struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int64                `json:"count"`
}
