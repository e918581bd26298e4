package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInsufficientGold = errors.New("store does not hold enough gold")
	ErrInsufficientCash = errors.New("store does not hold enough cash")
	ErrNegativeBalance  = errors.New("store balances cannot be negative")
)

// Store is a physical shop holding a gold and cash inventory
type Store struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	TotalGold   decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"totalGold"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"totalAmount"`
	GoldTaken   decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"goldTaken"`
	GoldGiven   decimal.Decimal `gorm:"type:decimal(15,3);not null;default:0" json:"goldGiven"`
	AmountTaken decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amountTaken"`
	AmountGiven decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"amountGiven"`
	CreatedAt   time.Time       `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updatedAt"`
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = now
	}
	s.Name = strings.TrimSpace(s.Name)
	return s.Validate()
}

func (s *Store) Validate() error {
	if s.Name == "" {
		return errors.New("store name is required")
	}
	if s.TotalGold.IsNegative() || s.TotalAmount.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}

// ApplyTransaction moves the store's inventory for a transaction.
// Deferred legs (borrowed_gold, borrowed_money) leave the store's side untouched.
func (s *Store) ApplyTransaction(t *Transaction) error {
	switch t.Type {
	case TransactionTypeBuy:
		if t.MovesMoney() && s.TotalAmount.LessThan(t.Amount) {
			return ErrInsufficientCash
		}
		if t.MovesGold() {
			s.TotalGold = s.TotalGold.Add(t.GoldWeight)
			s.GoldTaken = s.GoldTaken.Add(t.GoldWeight)
		}
		if t.MovesMoney() {
			s.TotalAmount = s.TotalAmount.Sub(t.Amount)
			s.AmountGiven = s.AmountGiven.Add(t.Amount)
		}
	case TransactionTypeSell:
		if t.MovesGold() {
			if s.TotalGold.LessThan(t.GoldWeight) {
				return ErrInsufficientGold
			}
			s.TotalGold = s.TotalGold.Sub(t.GoldWeight)
			s.GoldGiven = s.GoldGiven.Add(t.GoldWeight)
		}
		if t.MovesMoney() {
			s.TotalAmount = s.TotalAmount.Add(t.Amount)
			s.AmountTaken = s.AmountTaken.Add(t.Amount)
		}
	default:
		return ErrInvalidTransactionType
	}
	return nil
}

func (s *Store) TableName() string {
	return "stores"
}
