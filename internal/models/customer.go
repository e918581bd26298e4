package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrInvalidPhone         = errors.New("invalid phone number format")
)

// Customer is a person trading gold with the stores.
// BorrowedGold and BorrowedAmount are what the customer owes the business;
// a negative value means the business owes the customer.
type Customer struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone          string          `gorm:"type:varchar(20)" json:"phone"`
	Address        string          `gorm:"type:text" json:"address"`
	BorrowedGold   decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"borrowedGold"`
	BorrowedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"borrowedAmount"`
	TotalBought    decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"totalBought"`
	TotalSold      decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"totalSold"`
	CreatedAt      time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"not null" json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return c.Validate()
}

func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCustomerNameRequired
	}
	if c.Phone != "" && !phoneRegex.MatchString(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ApplyTransaction folds a transaction into the customer's running totals.
// Customer totals are kept from the customer's side: a store buy is a customer sale.
func (c *Customer) ApplyTransaction(t *Transaction) {
	switch t.Type {
	case TransactionTypeBuy:
		c.TotalSold = c.TotalSold.Add(t.GoldWeight)
		if !t.MovesGold() {
			c.BorrowedGold = c.BorrowedGold.Add(t.GoldWeight)
		}
		if !t.MovesMoney() {
			c.BorrowedAmount = c.BorrowedAmount.Sub(t.Amount)
		}
	case TransactionTypeSell:
		c.TotalBought = c.TotalBought.Add(t.GoldWeight)
		if !t.MovesGold() {
			c.BorrowedGold = c.BorrowedGold.Sub(t.GoldWeight)
		}
		if !t.MovesMoney() {
			c.BorrowedAmount = c.BorrowedAmount.Add(t.Amount)
		}
	}
}

func (c *Customer) TableName() string {
	return "customers"
}
