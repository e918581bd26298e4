package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gold-ledger/internal/models"
	"gold-ledger/internal/query"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUnsupportedClause = errors.New("unsupported filter clause")
)

// filterColumns maps clause fields to the columns they compare
var filterColumns = map[string]string{
	models.FieldType:          "transactions.type",
	models.FieldPaymentMethod: "transactions.payment_method",
	models.FieldCreatedAt:     "transactions.created_at",
}

// searchColumns maps search sub-fields to the text columns they match
var searchColumns = map[string]string{
	models.SubFieldCustomerName: "customers.name",
	models.SubFieldDescription:  "transactions.description",
}

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithSettlement records the transaction and applies it to the customer's and
// the store's running balances. Nothing is written if any step fails.
func (r *transactionRepository) CreateWithSettlement(transaction *models.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, transaction.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCustomerNotFound
			}
			return fmt.Errorf("failed to load customer: %w", err)
		}

		var store models.Store
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", strings.TrimSpace(transaction.StoreName)).
			First(&store).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreNotFound
			}
			return fmt.Errorf("failed to load store: %w", err)
		}

		// Amount is normally filled by BeforeCreate; the balances need it first.
		transaction.Amount = transaction.ComputeAmount()

		if err := store.ApplyTransaction(transaction); err != nil {
			return err
		}
		customer.ApplyTransaction(transaction)

		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		now := time.Now().UTC()
		if err := tx.Model(&store).Updates(map[string]interface{}{
			"total_gold":   store.TotalGold,
			"total_amount": store.TotalAmount,
			"gold_taken":   store.GoldTaken,
			"gold_given":   store.GoldGiven,
			"amount_taken": store.AmountTaken,
			"amount_given": store.AmountGiven,
			"updated_at":   now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update store balances: %w", err)
		}

		if err := tx.Model(&customer).Updates(map[string]interface{}{
			"borrowed_gold":   customer.BorrowedGold,
			"borrowed_amount": customer.BorrowedAmount,
			"total_bought":    customer.TotalBought,
			"total_sold":      customer.TotalSold,
			"updated_at":      now,
		}).Error; err != nil {
			return fmt.Errorf("failed to update customer balances: %w", err)
		}

		transaction.Customer = &customer
		return nil
	})
}

// FindByClauses retrieves one page of transactions matching all clauses
func (r *transactionRepository) FindByClauses(clauses []models.FilterClause, offset, limit int) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	q := r.db.Model(&models.Transaction{}).
		Joins("LEFT JOIN customers ON customers.id = transactions.customer_id")

	for _, c := range clauses {
		var err error
		if q, err = r.applyClause(q, c); err != nil {
			return nil, 0, err
		}
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if err := q.Preload("Customer").
		Offset(offset).Limit(limit).
		Order("transactions.created_at DESC, transactions.id DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

func (r *transactionRepository) applyClause(q *gorm.DB, c models.FilterClause) (*gorm.DB, error) {
	switch c.Operation {
	case models.OpEq:
		column, ok := filterColumns[c.Field]
		if !ok || c.Field == models.FieldCreatedAt {
			return nil, fmt.Errorf("%w: eq on %q", ErrUnsupportedClause, c.Field)
		}
		return q.Where(column+" = ?", c.Value.Scalar), nil

	case models.OpGte, models.OpLte:
		if c.Field != models.FieldCreatedAt {
			return nil, fmt.Errorf("%w: %s on %q", ErrUnsupportedClause, c.Operation, c.Field)
		}
		t, dateOnly, err := query.ParseDate(c.Value.Scalar)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrUnsupportedClause, c.Value.Scalar)
		}
		if c.Operation == models.OpGte {
			return q.Where("transactions.created_at >= ?", t), nil
		}
		// a bare date as an upper bound covers that whole day
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return q.Where("transactions.created_at <= ?", t), nil

	case models.OpOr:
		var group *gorm.DB
		for _, sub := range c.Value.Any {
			column, ok := searchColumns[sub.Field]
			if !ok {
				return nil, fmt.Errorf("%w: search on %q", ErrUnsupportedClause, sub.Field)
			}
			cond := "LOWER(" + column + ") LIKE ? ESCAPE '\\'"
			pattern := "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(sub.Value))) + "%"
			if group == nil {
				group = r.db.Where(cond, pattern)
			} else {
				group = group.Or(cond, pattern)
			}
		}
		if group == nil {
			return q, nil
		}
		return q.Where(group), nil
	}

	return nil, fmt.Errorf("%w: operation %q", ErrUnsupportedClause, c.Operation)
}

// likeEscaper makes search text match literally inside a LIKE pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GetWindowTotals sums the gold and money that moved through the stores since the given time.
// Buys bring gold in and pay money out; sells do the reverse.
func (r *transactionRepository) GetWindowTotals(since time.Time) (*models.WindowReport, error) {
	var row struct {
		GoldTaken   decimal.Decimal
		GoldGiven   decimal.Decimal
		TotalGold   decimal.Decimal
		AmountTaken decimal.Decimal
		AmountGiven decimal.Decimal
		TotalAmount decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select(`COALESCE(SUM(CASE WHEN type = ? THEN gold_weight ELSE 0 END), 0) AS gold_taken,
			COALESCE(SUM(CASE WHEN type = ? THEN gold_weight ELSE 0 END), 0) AS gold_given,
			COALESCE(SUM(gold_weight), 0) AS total_gold,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS amount_taken,
			COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS amount_given,
			COALESCE(SUM(amount), 0) AS total_amount`,
			models.TransactionTypeBuy, models.TransactionTypeSell,
			models.TransactionTypeSell, models.TransactionTypeBuy).
		Where("created_at >= ?", since.UTC()).
		Scan(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	return &models.WindowReport{
		GoldTaken:              row.GoldTaken,
		GoldGiven:              row.GoldGiven,
		TotalGoldTransaction:   row.TotalGold,
		AmountTaken:            row.AmountTaken,
		AmountGiven:            row.AmountGiven,
		TotalAmountTransaction: row.TotalAmount,
	}, nil
}
