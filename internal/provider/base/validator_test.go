package base

import (
	"testing"

	"momoapi/internal/domain/payment"
	"momoapi/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePaymentRequest(t *testing.T) {
	v := NewRequestValidator()

	require.NoError(t, v.ValidatePaymentRequest(payment.NewPaymentRequest("100", "46733123450", "order-1")))

	tests := []struct {
		name  string
		req   payment.PaymentRequest
		field string
	}{
		{"zero amount", payment.NewPaymentRequest("0", "46733123450", "o"), "amount"},
		{"not a number", payment.NewPaymentRequest("1,000", "46733123450", "o"), "amount"},
		{"bad currency", payment.NewPaymentRequest("10", "46733123450", "o", payment.WithCurrency("EURO")), "currency"},
		{"short msisdn", payment.NewPaymentRequest("10", "1234", "o"), "payer"},
		{"letters in msisdn", payment.NewPaymentRequest("10", "+46733123450", "o"), "payer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePaymentRequest(tt.req)
			require.ErrorIs(t, err, provider.ErrInvalidRequest)

			var ve *provider.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestValidateTransferRequest(t *testing.T) {
	v := NewRequestValidator()
	require.NoError(t, v.ValidateTransferRequest(payment.NewTransferRequest("0.50", "46733123451", "p-1")))

	err := v.ValidateTransferRequest(payment.NewTransferRequest("10", "", "p-1"))
	var ve *provider.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "payee", ve.Field)
}

func TestValidateRefundRequest(t *testing.T) {
	v := NewRequestValidator()
	require.NoError(t, v.ValidateRefundRequest(payment.NewRefundRequest("10", "ref", "r-1")))

	err := v.ValidateRefundRequest(payment.NewRefundRequest("10", " ", "r-1"))
	var ve *provider.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "referenceIdToRefund", ve.Field)

	err = v.ValidateRefundRequest(payment.NewRefundRequest("-1", "ref", "r-1"))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "amount", ve.Field)
	var de payment.DomainError
	assert.ErrorAs(t, err, &de)
}
