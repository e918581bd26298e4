package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
	s.echo.Validator = handlers.NewValidator()
	s.echo.Use(RequestID())

	// Handlers that return raw errors instead of answering through SendError.
	s.echo.POST("/transactions", func(c echo.Context) error {
		var req dto.CreateTransactionRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		return c.Validate(&req)
	})
	s.echo.GET("/customers", func(c echo.Context) error {
		return stderrors.New("pq: relation \"customers\" does not exist")
	})
	s.echo.GET("/dashboard/:days", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "dashboard totals are being rebuilt")
	})
}

func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) serve(method, path, body string) (*httptest.ResponseRecorder, errors.ErrorResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(TraceIDHeader, "console-run-9")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec, resp
}

func (s *ErrorHandlerTestSuite) TestTransactionValidationErrorsNameEachField() {
	body := `{"customerId":3,"storeName":"Harbour Road","type":"lend","paymentMethod":"cheque","goldWeight":"0","goldPrice":"6500"}`
	rec, resp := s.serve(http.MethodPost, "/transactions", body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
	s.Equal("console-run-9", resp.Error.TraceID)
	s.ElementsMatch([]string{
		"Type: must be buy or sell",
		"PaymentMethod: must be one of: cash, upi, borrowed_gold, borrowed_money",
		"GoldWeight: must be a number greater than 0",
	}, resp.Error.Details)
}

func (s *ErrorHandlerTestSuite) TestMalformedBodyIsValidationError() {
	rec, resp := s.serve(http.MethodPost, "/transactions", `{"customerId":"three"`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestRawErrorHidesInternals() {
	rec, resp := s.serve(http.MethodGet, "/customers", "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(errors.SystemInternalError), resp.Error.Code)
	s.Equal("console-run-9", resp.Error.TraceID)
	s.NotContains(rec.Body.String(), "pq:")
}

func (s *ErrorHandlerTestSuite) TestHTTPErrorKeepsStatusAndMessage() {
	rec, resp := s.serve(http.MethodGet, "/dashboard/7", "")

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal(string(errors.SystemServiceUnavailable), resp.Error.Code)
	s.Equal("dashboard totals are being rebuilt", resp.Error.Message)
}

func (s *ErrorHandlerTestSuite) TestUnknownRouteAndMethod() {
	rec, resp := s.serve(http.MethodGet, "/vaults", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(errors.SystemUnexpectedError), resp.Error.Code)

	rec, resp = s.serve(http.MethodDelete, "/customers", "")
	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.Equal(string(errors.ValidationGeneral), resp.Error.Code)
}

func (s *ErrorHandlerTestSuite) TestCommittedResponseIsLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	s.Require().NoError(c.JSON(http.StatusOK, map[string]string{"status": "ok"}))

	CustomHTTPErrorHandler(stderrors.New("late failure"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "SYSTEM_001")
}

func (s *ErrorHandlerTestSuite) TestStatusMapping() {
	cases := map[int]errors.ErrorCode{
		http.StatusBadRequest:          errors.ValidationGeneral,
		http.StatusUnauthorized:        errors.AuthMissingToken,
		http.StatusTooManyRequests:     errors.SystemRateLimitExceeded,
		http.StatusInternalServerError: errors.SystemInternalError,
		http.StatusTeapot:              errors.SystemUnexpectedError,
	}
	for status, code := range cases {
		s.Equal(code, mapHTTPStatusToErrorCode(status), http.StatusText(status))
	}
}
