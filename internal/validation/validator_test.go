package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Type    string          `json:"type" validate:"required,transaction_type"`
	Method  string          `json:"paymentMethod" validate:"required,payment_method"`
	Weight  string          `json:"goldWeight" validate:"required,positive_decimal"`
	Price   string          `json:"goldPrice" validate:"required,positive_decimal"`
	Phone   string          `json:"phone" validate:"omitempty,phone"`
	Ignored string          `json:"-"`
}

func valid() sample {
	return sample{
		Type:   "buy",
		Method: "borrowed_gold",
		Weight: "1.250",
		Price:  "6100.50",
		Phone:  "+919876543210",
	}
}

func TestValidator_AcceptsValidStruct(t *testing.T) {
	require.NoError(t, GetValidator().GetValidate().Struct(valid()))
}

func TestValidator_CustomTags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
		tag    string
	}{
		{"unknown type", func(s *sample) { s.Type = "deposit" }, "type", "transaction_type"},
		{"unknown payment method", func(s *sample) { s.Method = "card" }, "paymentMethod", "payment_method"},
		{"zero weight", func(s *sample) { s.Weight = "0" }, "goldWeight", "positive_decimal"},
		{"non numeric weight", func(s *sample) { s.Weight = "abc" }, "goldWeight", "positive_decimal"},
		{"negative price", func(s *sample) { s.Price = "-1" }, "goldPrice", "positive_decimal"},
		{"short phone", func(s *sample) { s.Phone = "12345" }, "phone", "phone"},
	}

	v := NewValidator().GetValidate()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)

			err := v.Struct(s)
			require.Error(t, err)

			var fieldErrs validator.ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field())
			assert.Equal(t, tt.tag, fieldErrs[0].Tag())
		})
	}
}

func TestValidator_TypeIsCaseInsensitive(t *testing.T) {
	s := valid()
	s.Type = "SELL"
	s.Method = "UPI"

	assert.NoError(t, NewValidator().GetValidate().Struct(s))
}

func TestGetValidator_ReturnsSingleton(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
