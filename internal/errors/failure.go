package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed console request by how the console must react to it
type Kind int

const (
	// KindNetwork covers transport failures and server faults. The request may be retried.
	KindNetwork Kind = iota
	// KindValidation is a rejected request. Its message is shown as-is.
	KindValidation
	// KindUnauthorized ends the session.
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "network"
	}
}

// Failure is the error every API call made by the console resolves to
type Failure struct {
	Kind    Kind
	Status  int
	Code    string
	Message string
	Details []string
	TraceID string
	Err     error
}

func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Kind.String())
	if f.Code != "" {
		fmt.Fprintf(&b, " [%s]", f.Code)
	}
	b.WriteString(": ")
	b.WriteString(f.Message)
	if len(f.Details) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(f.Details, "; "))
	}
	return b.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Retryable reports whether re-issuing the same request can succeed
func (f *Failure) Retryable() bool {
	return f.Kind == KindNetwork
}

// FailureFromResponse classifies a non-2xx response. 401 ends the session, other 4xx
// statuses are validation failures and 5xx statuses are treated like network faults.
func FailureFromResponse(status int, body []byte) *Failure {
	f := &Failure{Status: status, Message: http.StatusText(status)}

	var payload ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error.Code != "" {
		f.Code = payload.Error.Code
		f.Message = payload.Error.Message
		f.Details = payload.Error.Details
		f.TraceID = payload.Error.TraceID
	}

	switch {
	case status == http.StatusUnauthorized:
		f.Kind = KindUnauthorized
	case status >= 400 && status < 500:
		f.Kind = KindValidation
	default:
		f.Kind = KindNetwork
	}
	return f
}

// NetworkFailure wraps a transport error
func NetworkFailure(err error) *Failure {
	return &Failure{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// AsFailure returns the Failure inside err. Errors that carry none are treated as network failures.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if stderrors.As(err, &f) {
		return f
	}
	return NetworkFailure(err)
}

// IsUnauthorized reports whether err ends the session
func IsUnauthorized(err error) bool {
	var f *Failure
	return stderrors.As(err, &f) && f.Kind == KindUnauthorized
}
