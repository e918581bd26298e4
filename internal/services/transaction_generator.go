package services

import (
	"math/rand"
	"sort"
	"time"

	"gold-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// ornament is a kind of piece the demo ledger trades, with its usual weight range in grams
type ornament struct {
	Name      string
	MinWeight float64
	MaxWeight float64
}

type transactionGenerator struct {
	ornaments []ornament
	rng       *rand.Rand
}

const (
	// baseGoldRate is the per-gram price the generated prices drift around
	baseGoldRate      = 6500.00
	goldRateDrift     = 0.04
	shopHoursStart    = 10
	shopHoursEnd      = 21
	sellShare         = 0.55
	cashShare         = 0.45
	upiShare          = 0.80
	borrowedGoldShare = 0.90
)

// NewTransactionGenerator creates a generator seeded from the clock
func NewTransactionGenerator() TransactionGeneratorInterface {
	return NewSeededTransactionGenerator(time.Now().UnixNano())
}

// NewSeededTransactionGenerator creates a deterministic generator
func NewSeededTransactionGenerator(seed int64) TransactionGeneratorInterface {
	return &transactionGenerator{
		ornaments: initializeOrnamentPool(),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func initializeOrnamentPool() []ornament {
	return []ornament{
		// Jewellery
		{"22K bangle", 8, 40},
		{"22K chain", 5, 30},
		{"22K necklace", 20, 80},
		{"22K earrings", 2, 10},
		{"22K ring", 2, 8},
		{"Temple jewellery set", 40, 120},
		{"Mangalsutra", 10, 35},
		{"Anklet pair", 10, 40},

		// Bullion
		{"24K coin", 1, 20},
		{"24K bar", 50, 100},
		{"Biscuit", 10, 50},

		// Exchange
		{"Old gold exchange", 5, 60},
		{"Scrap gold", 1, 25},
	}
}

// GenerateHistoricalTransactions spreads count transactions between startDate and endDate,
// returned oldest first so settling them in order replays a plausible history.
func (g *transactionGenerator) GenerateHistoricalTransactions(customerIDs []uint, storeNames []string, startDate, endDate time.Time, count int) []*models.Transaction {
	if len(customerIDs) == 0 || len(storeNames) == 0 || count <= 0 || !endDate.After(startDate) {
		return []*models.Transaction{}
	}

	transactions := make([]*models.Transaction, 0, count)
	for i := 0; i < count; i++ {
		piece := g.ornaments[g.rng.Intn(len(g.ornaments))]
		timestamp := g.GenerateTimestamp(startDate, endDate)

		transactions = append(transactions, &models.Transaction{
			CustomerID:    customerIDs[g.rng.Intn(len(customerIDs))],
			StoreName:     storeNames[g.rng.Intn(len(storeNames))],
			Type:          g.GenerateTransactionType(),
			PaymentMethod: g.GeneratePaymentMethod(),
			GoldWeight:    g.GenerateGoldWeight(piece),
			GoldPrice:     g.GenerateGoldPrice(),
			Description:   piece.Name,
			CreatedAt:     timestamp,
			UpdatedAt:     timestamp,
		})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
	})

	return transactions
}

// GenerateTransactionType returns sell 55% of the time, buy otherwise
func (g *transactionGenerator) GenerateTransactionType() models.TransactionType {
	if g.rng.Float64() < sellShare {
		return models.TransactionTypeSell
	}
	return models.TransactionTypeBuy
}

// GeneratePaymentMethod weights cash 45%, upi 35%, borrowed_gold 10%, borrowed_money 10%
func (g *transactionGenerator) GeneratePaymentMethod() models.PaymentMethod {
	roll := g.rng.Float64()
	switch {
	case roll < cashShare:
		return models.PaymentMethodCash
	case roll < upiShare:
		return models.PaymentMethodUPI
	case roll < borrowedGoldShare:
		return models.PaymentMethodBorrowedGold
	default:
		return models.PaymentMethodBorrowedMoney
	}
}

// GenerateGoldWeight picks a weight in the piece's range, to the milligram
func (g *transactionGenerator) GenerateGoldWeight(piece ornament) decimal.Decimal {
	weight := piece.MinWeight + g.rng.Float64()*(piece.MaxWeight-piece.MinWeight)
	return decimal.NewFromFloat(weight).Round(3)
}

// GenerateGoldPrice returns a per-gram rate within 4% of the base rate
func (g *transactionGenerator) GenerateGoldPrice() decimal.Decimal {
	drift := (g.rng.Float64()*2 - 1) * goldRateDrift
	return decimal.NewFromFloat(baseGoldRate * (1 + drift)).Round(2)
}

// GenerateTimestamp picks a day in the range and a time within shop hours
func (g *transactionGenerator) GenerateTimestamp(startDate, endDate time.Time) time.Time {
	diff := endDate.Sub(startDate)
	day := startDate.Add(time.Duration(g.rng.Int63n(int64(diff)))).UTC()

	hour := shopHoursStart + g.rng.Intn(shopHoursEnd-shopHoursStart)
	timestamp := time.Date(day.Year(), day.Month(), day.Day(), hour, g.rng.Intn(60), g.rng.Intn(60), 0, time.UTC)

	if timestamp.After(endDate) {
		return endDate.UTC()
	}
	if timestamp.Before(startDate) {
		return startDate.UTC()
	}
	return timestamp
}
