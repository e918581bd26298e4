package services

import (
	"testing"
	"time"

	"gold-ledger/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionGeneratorTestSuite struct {
	suite.Suite
	generator *transactionGenerator
	start     time.Time
	end       time.Time
}

func TestTransactionGeneratorTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionGeneratorTestSuite))
}

func (s *TransactionGeneratorTestSuite) SetupTest() {
	s.generator = NewSeededTransactionGenerator(42).(*transactionGenerator)
	s.end = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	s.start = s.end.AddDate(0, 0, -30)
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistoricalTransactions_ShapeAndOrder() {
	customers := []uint{1, 2, 3}
	stores := []string{"Anna Nagar", "T Nagar"}

	transactions := s.generator.GenerateHistoricalTransactions(customers, stores, s.start, s.end, 200)
	s.Require().Len(transactions, 200)

	for i, tx := range transactions {
		s.Contains(customers, tx.CustomerID)
		s.Contains(stores, tx.StoreName)
		s.True(tx.Type.IsValid())
		s.True(tx.PaymentMethod.IsValid())
		s.True(tx.GoldWeight.IsPositive())
		s.True(tx.GoldPrice.IsPositive())
		s.NotEmpty(tx.Description)
		s.NoError(tx.Validate())
		s.False(tx.CreatedAt.Before(s.start))
		s.False(tx.CreatedAt.After(s.end))
		if i > 0 {
			s.False(tx.CreatedAt.Before(transactions[i-1].CreatedAt), "transactions must be oldest first")
		}
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistoricalTransactions_NothingToWorkWith() {
	s.Empty(s.generator.GenerateHistoricalTransactions(nil, []string{"Anna Nagar"}, s.start, s.end, 10))
	s.Empty(s.generator.GenerateHistoricalTransactions([]uint{1}, nil, s.start, s.end, 10))
	s.Empty(s.generator.GenerateHistoricalTransactions([]uint{1}, []string{"Anna Nagar"}, s.start, s.end, 0))
	s.Empty(s.generator.GenerateHistoricalTransactions([]uint{1}, []string{"Anna Nagar"}, s.end, s.start, 10))
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistoricalTransactions_Deterministic() {
	a := NewSeededTransactionGenerator(7).GenerateHistoricalTransactions([]uint{1, 2}, []string{"Anna Nagar"}, s.start, s.end, 20)
	b := NewSeededTransactionGenerator(7).GenerateHistoricalTransactions([]uint{1, 2}, []string{"Anna Nagar"}, s.start, s.end, 20)
	s.Equal(a, b)
}

func (s *TransactionGeneratorTestSuite) TestGenerateTransactionType_Distribution() {
	sells := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if s.generator.GenerateTransactionType() == models.TransactionTypeSell {
			sells++
		}
	}
	ratio := float64(sells) / n
	s.InDelta(sellShare, ratio, 0.03)
}

func (s *TransactionGeneratorTestSuite) TestGeneratePaymentMethod_CoversAllMethods() {
	seen := map[models.PaymentMethod]int{}
	for i := 0; i < 2000; i++ {
		seen[s.generator.GeneratePaymentMethod()]++
	}
	s.Len(seen, 4)
	s.Greater(seen[models.PaymentMethodCash], seen[models.PaymentMethodBorrowedGold])
}

func (s *TransactionGeneratorTestSuite) TestGenerateGoldPrice_WithinDrift() {
	low := decimal.NewFromFloat(baseGoldRate * (1 - goldRateDrift)).Round(2)
	high := decimal.NewFromFloat(baseGoldRate * (1 + goldRateDrift)).Round(2)
	for i := 0; i < 500; i++ {
		price := s.generator.GenerateGoldPrice()
		s.True(price.GreaterThanOrEqual(low), price.String())
		s.True(price.LessThanOrEqual(high), price.String())
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateGoldWeight_WithinRange() {
	piece := ornament{Name: "22K ring", MinWeight: 2, MaxWeight: 8}
	for i := 0; i < 500; i++ {
		weight := s.generator.GenerateGoldWeight(piece)
		s.True(weight.GreaterThanOrEqual(decimal.NewFromInt(2)))
		s.True(weight.LessThanOrEqual(decimal.NewFromInt(8)))
		s.LessOrEqual(-weight.Exponent(), int32(3))
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateTimestamp_ShopHours() {
	for i := 0; i < 500; i++ {
		ts := s.generator.GenerateTimestamp(s.start, s.end)
		s.Equal(time.UTC, ts.Location())
		s.GreaterOrEqual(ts.Hour(), shopHoursStart)
		s.Less(ts.Hour(), shopHoursEnd)
	}
}
