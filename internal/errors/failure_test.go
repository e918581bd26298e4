package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

type FailureTestSuite struct {
	suite.Suite
}

func TestFailureTestSuite(t *testing.T) {
	suite.Run(t, new(FailureTestSuite))
}

func (s *FailureTestSuite) body(code ErrorCode, details ...string) []byte {
	data, err := NewErrorResponse(code, "trace-1", WithDetails(details...)).ToJSON()
	s.Require().NoError(err)
	return data
}

func (s *FailureTestSuite) TestFailureFromResponse_Unauthorized() {
	f := FailureFromResponse(http.StatusUnauthorized, s.body(AuthExpiredToken))

	s.Equal(KindUnauthorized, f.Kind)
	s.Equal("AUTH_003", f.Code)
	s.False(f.Retryable())
	s.True(IsUnauthorized(fmt.Errorf("load transactions: %w", f)))
}

func (s *FailureTestSuite) TestFailureFromResponse_ValidationKeepsServerMessage() {
	f := FailureFromResponse(http.StatusBadRequest, s.body(ValidationInvalidFilter, "clause 0 (amount): unsupported field"))

	s.Equal(KindValidation, f.Kind)
	s.Equal("Invalid transaction filter", f.Message)
	s.Equal([]string{"clause 0 (amount): unsupported field"}, f.Details)
	s.Equal("trace-1", f.TraceID)
	s.False(f.Retryable())
	s.Contains(f.Error(), "VALIDATION_003")
}

func (s *FailureTestSuite) TestFailureFromResponse_ServerFaultIsRetryable() {
	f := FailureFromResponse(http.StatusBadGateway, []byte("<html>bad gateway</html>"))

	s.Equal(KindNetwork, f.Kind)
	s.Equal("Bad Gateway", f.Message)
	s.True(f.Retryable())
	s.False(IsUnauthorized(f))
}

func (s *FailureTestSuite) TestAsFailure() {
	s.Nil(AsFailure(nil))

	f := AsFailure(context.DeadlineExceeded)
	s.Equal(KindNetwork, f.Kind)
	s.True(errors.Is(f, context.DeadlineExceeded))

	original := FailureFromResponse(http.StatusUnprocessableEntity, s.body(StoreInsufficientGold))
	s.Same(original, AsFailure(fmt.Errorf("wrapped: %w", original)))
}
