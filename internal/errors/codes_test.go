package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// CodesTestSuite defines the test suite for error codes
type CodesTestSuite struct {
	suite.Suite
}

// TestCodesTestSuite runs the test suite
func TestCodesTestSuite(t *testing.T) {
	suite.Run(t, new(CodesTestSuite))
}

var allCodes = []ErrorCode{
	AuthInvalidCredentials,
	AuthMissingToken,
	AuthExpiredToken,
	AuthInvalidTokenFormat,
	AuthRevokedToken,
	AuthAdminAlreadyExists,
	ValidationGeneral,
	ValidationRequiredField,
	ValidationInvalidFilter,
	ValidationOutOfRange,
	ValidationInvalidEmail,
	ValidationInvalidPhone,
	ValidationInvalidDate,
	CustomerNotFound,
	CustomerInvalidID,
	StoreNotFound,
	StoreAlreadyExists,
	StoreInsufficientGold,
	StoreInsufficientCash,
	TransactionInvalidWeight,
	TransactionInvalidPrice,
	TransactionInvalidType,
	TransactionInvalidPayment,
	TransactionValidationFailed,
	DashboardInvalidWindow,
	SystemInternalError,
	SystemDatabaseError,
	SystemServiceUnavailable,
	SystemConfigurationError,
	SystemUnexpectedError,
	SystemRateLimitExceeded,
}

// TestGetErrorMessage_ValidCode tests getting message for valid error codes
func (s *CodesTestSuite) TestGetErrorMessage_ValidCode() {
	testCases := []struct {
		name     string
		code     ErrorCode
		expected string
	}{
		{
			name:     "Auth Invalid Credentials",
			code:     AuthInvalidCredentials,
			expected: "Invalid email or password",
		},
		{
			name:     "Invalid Filter",
			code:     ValidationInvalidFilter,
			expected: "Invalid transaction filter",
		},
		{
			name:     "Store Insufficient Gold",
			code:     StoreInsufficientGold,
			expected: "Store does not hold enough gold for this sale",
		},
		{
			name:     "Dashboard Invalid Window",
			code:     DashboardInvalidWindow,
			expected: "Dashboard duration must be 1, 7 or 30 days",
		},
		{
			name:     "System Internal Error",
			code:     SystemInternalError,
			expected: "An unexpected error occurred. Please contact support with trace ID",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, GetErrorMessage(tc.code))
		})
	}
}

// TestGetErrorMessage_InvalidCode tests getting message for invalid error code
func (s *CodesTestSuite) TestGetErrorMessage_InvalidCode() {
	s.Equal("An error occurred", GetErrorMessage("INVALID_CODE"))
}

// TestIsValidErrorCode_InvalidCode tests validation of invalid error code
func (s *CodesTestSuite) TestIsValidErrorCode_InvalidCode() {
	for _, code := range []ErrorCode{"INVALID_001", "UNKNOWN_CODE", "", "AUTH_999"} {
		s.Run(string(code), func() {
			s.False(IsValidErrorCode(code), "Expected %s to be invalid", code)
		})
	}
}

// TestErrorCodeConstants_Uniqueness ensures all error codes are unique
func (s *CodesTestSuite) TestErrorCodeConstants_Uniqueness() {
	seen := make(map[ErrorCode]bool)
	for _, code := range allCodes {
		s.False(seen[code], "Duplicate error code found: %s", code)
		seen[code] = true
	}
}

// TestErrorCodeConstants_Format ensures all error codes follow the PREFIX_NNN convention
func (s *CodesTestSuite) TestErrorCodeConstants_Format() {
	prefixes := []string{"AUTH_", "VALIDATION_", "CUSTOMER_", "STORE_", "TRANSACTION_", "DASHBOARD_", "SYSTEM_"}

	for _, code := range allCodes {
		matched := false
		for _, prefix := range prefixes {
			if strings.HasPrefix(string(code), prefix) {
				matched = true
				break
			}
		}
		s.True(matched, "Error code %s has an unknown prefix", code)
	}
}

// TestAllErrorCodesHaveMessages ensures every error code has a message
func (s *CodesTestSuite) TestAllErrorCodesHaveMessages() {
	for _, code := range allCodes {
		s.Run(string(code), func() {
			s.True(IsValidErrorCode(code))
			message := GetErrorMessage(code)
			s.NotEqual("An error occurred", message, "Error code %s should have a specific message", code)
		})
	}
}
