package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"gold-ledger/internal/models"
	"gold-ledger/internal/repositories/repository_mocks"
	"gold-ledger/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type DevHandlerTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	customerRepo    *repository_mocks.MockCustomerRepositoryInterface
	storeRepo       *repository_mocks.MockStoreRepositoryInterface
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	generator       *service_mocks.MockTransactionGeneratorInterface
	handler         *DevHandler
	echo            *echo.Echo
}

func TestDevHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DevHandlerTestSuite))
}

func (s *DevHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.customerRepo = repository_mocks.NewMockCustomerRepositoryInterface(s.ctrl)
	s.storeRepo = repository_mocks.NewMockStoreRepositoryInterface(s.ctrl)
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.generator = service_mocks.NewMockTransactionGeneratorInterface(s.ctrl)
	s.handler = NewDevHandler(s.customerRepo, s.storeRepo, s.transactionRepo, s.generator, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.echo = echo.New()
}

func (s *DevHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *DevHandlerTestSuite) post(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	s.Require().NoError(s.handler.GenerateTestData(s.echo.NewContext(req, rec)))
	return rec
}

func (s *DevHandlerTestSuite) TestGenerateTestData_SettlesAndSkips() {
	s.customerRepo.EXPECT().List(0, generatorSampleSize).Return([]models.Customer{{ID: 4}, {ID: 9}}, int64(2), nil)
	s.storeRepo.EXPECT().List(0, generatorSampleSize).Return([]models.Store{{ID: 1, Name: "Anna Nagar"}}, int64(1), nil)

	generated := []*models.Transaction{
		{CustomerID: 4, StoreName: "Anna Nagar", Type: models.TransactionTypeBuy, PaymentMethod: models.PaymentMethodCash, GoldWeight: decimal.NewFromInt(5), GoldPrice: decimal.NewFromInt(6500)},
		{CustomerID: 9, StoreName: "Anna Nagar", Type: models.TransactionTypeSell, PaymentMethod: models.PaymentMethodUPI, GoldWeight: decimal.NewFromInt(500), GoldPrice: decimal.NewFromInt(6500)},
		{CustomerID: 4, StoreName: "Anna Nagar", Type: models.TransactionTypeSell, PaymentMethod: models.PaymentMethodCash, GoldWeight: decimal.NewFromInt(2), GoldPrice: decimal.NewFromInt(6500)},
	}
	s.generator.EXPECT().
		GenerateHistoricalTransactions([]uint{4, 9}, []string{"Anna Nagar"}, gomock.Any(), gomock.Any(), 3).
		Return(generated)

	gomock.InOrder(
		s.transactionRepo.EXPECT().CreateWithSettlement(generated[0]).Return(nil),
		s.transactionRepo.EXPECT().CreateWithSettlement(generated[1]).Return(models.ErrInsufficientGold),
		s.transactionRepo.EXPECT().CreateWithSettlement(generated[2]).Return(nil),
	)

	rec := s.post("/dev/generate-test-data?count=3&days=7")
	s.Equal(http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			Created int `json:"transactions_created"`
			Skipped int `json:"transactions_skipped"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(2, resp.Data.Created)
	s.Equal(1, resp.Data.Skipped)
}

func (s *DevHandlerTestSuite) TestGenerateTestData_OutOfRangeParams() {
	for _, target := range []string{
		"/dev/generate-test-data?count=0",
		"/dev/generate-test-data?count=5000",
		"/dev/generate-test-data?days=400",
		"/dev/generate-test-data?days=abc",
	} {
		rec := s.post(target)
		s.Equal(http.StatusBadRequest, rec.Code, target)
		s.Contains(rec.Body.String(), "VALIDATION_004")
	}
}

func (s *DevHandlerTestSuite) TestGenerateTestData_NeedsCustomersAndStores() {
	s.customerRepo.EXPECT().List(0, generatorSampleSize).Return([]models.Customer{}, int64(0), nil)
	s.storeRepo.EXPECT().List(0, generatorSampleSize).Return([]models.Store{{Name: "Anna Nagar"}}, int64(1), nil)

	rec := s.post("/dev/generate-test-data")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *DevHandlerTestSuite) TestGenerateTestData_RepositoryFailure() {
	s.customerRepo.EXPECT().List(0, generatorSampleSize).Return(nil, int64(0), errors.New("connection refused"))

	rec := s.post("/dev/generate-test-data")
	s.Equal(http.StatusInternalServerError, rec.Code)
}
