package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "console-run-1:transactions.3"
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

// Every code the API answers with must land in the console kind that drives its reaction.
func (s *ResponseTestSuite) TestCodesReachConsoleAsTheirKind() {
	cases := []struct {
		code   ErrorCode
		status int
		kind   Kind
	}{
		{ValidationInvalidFilter, http.StatusBadRequest, KindValidation},
		{ValidationOutOfRange, http.StatusBadRequest, KindValidation},
		{ValidationInvalidDate, http.StatusBadRequest, KindValidation},
		{TransactionInvalidType, http.StatusBadRequest, KindValidation},
		{TransactionInvalidPayment, http.StatusBadRequest, KindValidation},
		{DashboardInvalidWindow, http.StatusBadRequest, KindValidation},
		{CustomerNotFound, http.StatusNotFound, KindValidation},
		{StoreNotFound, http.StatusNotFound, KindValidation},
		{AuthAdminAlreadyExists, http.StatusConflict, KindValidation},
		{StoreAlreadyExists, http.StatusConflict, KindValidation},
		{StoreInsufficientGold, http.StatusUnprocessableEntity, KindValidation},
		{StoreInsufficientCash, http.StatusUnprocessableEntity, KindValidation},
		{SystemRateLimitExceeded, http.StatusTooManyRequests, KindValidation},
		{AuthInvalidCredentials, http.StatusUnauthorized, KindUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized, KindUnauthorized},
		{AuthRevokedToken, http.StatusUnauthorized, KindUnauthorized},
		{SystemInternalError, http.StatusInternalServerError, KindNetwork},
		{SystemDatabaseError, http.StatusInternalServerError, KindNetwork},
		{SystemServiceUnavailable, http.StatusServiceUnavailable, KindNetwork},
	}

	for _, tc := range cases {
		s.Run(string(tc.code), func() {
			resp := NewErrorResponse(tc.code, s.traceID)
			s.Equal(tc.status, resp.GetHTTPStatus())

			body, err := resp.ToJSON()
			s.Require().NoError(err)

			f := FailureFromResponse(resp.GetHTTPStatus(), body)
			s.Equal(tc.kind, f.Kind)
			s.Equal(string(tc.code), f.Code)
			s.Equal(GetErrorMessage(tc.code), f.Message)
			s.Equal(s.traceID, f.TraceID)
		})
	}
}

func (s *ResponseTestSuite) TestUnknownCodeIsServerError() {
	resp := NewErrorResponse("VAULT_999", s.traceID)

	s.Equal(http.StatusInternalServerError, resp.GetHTTPStatus())
	s.True(resp.IsServerError())
	s.False(resp.IsClientError())
}

func (s *ResponseTestSuite) TestOptionsOverrideMessageAndDetails() {
	resp := NewErrorResponse(
		StoreInsufficientGold,
		s.traceID,
		WithMessage("Harbour Road holds 1.500 g"),
		WithDetails("requested: 2.000 g"),
		WithDetails("requested: 2.000 g", "available: 1.500 g"),
	)

	s.Equal("STORE_003", resp.Error.Code)
	s.Equal("Harbour Road holds 1.500 g", resp.Error.Message)
	s.Equal([]string{"requested: 2.000 g", "available: 1.500 g"}, resp.Error.Details)
	s.True(resp.IsClientError())
	s.Equal("[STORE_003] Harbour Road holds 1.500 g (trace: "+s.traceID+")", resp.String())
}

func (s *ResponseTestSuite) TestValidationErrorListsEveryField() {
	resp := NewValidationError(map[string]string{
		"Type":       "must be buy or sell",
		"GoldWeight": "must be a number greater than 0",
	}, s.traceID)

	s.Equal("VALIDATION_001", resp.Error.Code)
	s.ElementsMatch([]string{
		"Type: must be buy or sell",
		"GoldWeight: must be a number greater than 0",
	}, resp.Error.Details)

	fromList := NewValidationErrorFromList([]string{"clauses[2]: unknown column \"karat\""}, s.traceID)
	s.Equal("VALIDATION_001", fromList.Error.Code)
	s.Equal([]string{"clauses[2]: unknown column \"karat\""}, fromList.Error.Details)
}

func (s *ResponseTestSuite) TestWrappedErrorsStayServerSide() {
	cause := stderrors.New(`pq: relation "transactions" does not exist`)

	system, err := WrapSystemError(cause, s.traceID)
	s.Same(cause, err)
	s.Equal("SYSTEM_001", system.Error.Code)
	s.NotContains(system.Error.Message, "pq")
	s.Empty(system.Error.Details)

	database, err := WrapDatabaseError(cause, s.traceID)
	s.Same(cause, err)
	s.Equal("SYSTEM_002", database.Error.Code)
	s.NotContains(database.Error.Message, "transactions")
}

func (s *ResponseTestSuite) TestJSONShapeOmitsEmptyDetails() {
	body, err := NewErrorResponse(DashboardInvalidWindow, s.traceID).ToJSON()
	s.Require().NoError(err)

	var shape map[string]map[string]any
	s.Require().NoError(json.Unmarshal(body, &shape))
	s.Equal("DASHBOARD_001", shape["error"]["code"])
	s.Equal(s.traceID, shape["error"]["trace_id"])
	s.NotContains(shape["error"], "details")
}
