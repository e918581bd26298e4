package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a gold transaction, seen from the store.
type TransactionType string

// PaymentMethod is how the money (or gold) leg of a transaction is settled.
type PaymentMethod string

const (
	// TransactionTypeBuy means the store receives gold from the customer and pays for it.
	TransactionTypeBuy TransactionType = "buy"
	// TransactionTypeSell means the store hands gold to the customer and is paid for it.
	TransactionTypeSell TransactionType = "sell"

	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodUPI           PaymentMethod = "upi"
	PaymentMethodBorrowedGold  PaymentMethod = "borrowed_gold"
	PaymentMethodBorrowedMoney PaymentMethod = "borrowed_money"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidGoldWeight      = errors.New("gold weight must be positive")
	ErrInvalidGoldPrice       = errors.New("gold price must be positive")
)

// Transaction represents one gold buy or sell recorded against a customer and a store
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	StoreName     string          `gorm:"type:varchar(255);not null;index" json:"store_name"`
	Type          TransactionType `gorm:"type:varchar(10);not null;index" json:"type"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;index" json:"payment_method"`
	GoldWeight    decimal.Decimal `gorm:"type:decimal(15,3);not null" json:"gold_weight"`
	GoldPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"gold_price"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Description   string          `gorm:"type:text" json:"description"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()

	// Set timestamps if not already set (for tests)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	t.Amount = t.ComputeAmount()
	t.Description = strings.TrimSpace(t.Description)

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.CustomerID == 0 {
		return errors.New("customer ID is required")
	}

	if strings.TrimSpace(t.StoreName) == "" {
		return errors.New("store name is required")
	}

	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if !t.PaymentMethod.IsValid() {
		return ErrInvalidPaymentMethod
	}

	if !t.GoldWeight.IsPositive() {
		return ErrInvalidGoldWeight
	}

	if !t.GoldPrice.IsPositive() {
		return ErrInvalidGoldPrice
	}

	return nil
}

// ComputeAmount returns the money value of the transaction, rounded to paise
func (t *Transaction) ComputeAmount() decimal.Decimal {
	return t.GoldWeight.Mul(t.GoldPrice).Round(2)
}

// MovesGold reports whether gold physically changes hands now.
// A borrowed_gold settlement defers the gold leg to the customer's gold balance.
func (t *Transaction) MovesGold() bool {
	return t.PaymentMethod != PaymentMethodBorrowedGold
}

// MovesMoney reports whether money physically changes hands now.
// A borrowed_money settlement defers the money leg to the customer's money balance.
func (t *Transaction) MovesMoney() bool {
	return t.PaymentMethod != PaymentMethodBorrowedMoney
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValid checks if the transaction type is one of the supported directions
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeBuy, TransactionTypeSell:
		return true
	default:
		return false
	}
}

// Ptr returns a pointer to a copy of tt, for optional filter fields.
func (tt TransactionType) Ptr() *TransactionType {
	return &tt
}

// IsValid checks if the payment method is supported
func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodBorrowedGold, PaymentMethodBorrowedMoney:
		return true
	default:
		return false
	}
}

// Ptr returns a pointer to a copy of pm, for optional filter fields.
func (pm PaymentMethod) Ptr() *PaymentMethod {
	return &pm
}
