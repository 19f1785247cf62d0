package payment

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentRequestWireShape(t *testing.T) {
	req := NewPaymentRequest("100", "46733123450", "order-123",
		WithCurrency("EUR"),
		WithPayerMessage("Payment"),
		WithPayeeNote("Thank you"),
	)

	b, err := json.Marshal(req)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"amount": "100",
		"currency": "EUR",
		"externalId": "order-123",
		"payer": {"partyIdType": "MSISDN", "partyId": "46733123450"},
		"payerMessage": "Payment",
		"payeeNote": "Thank you"
	}`, string(b))
}

func TestRequestDefaults(t *testing.T) {
	req := NewTransferRequest("50", "46733123451", "payout-1")
	assert.Equal(t, DefaultCurrency, req.Currency)
	assert.Empty(t, req.PayerMessage)
	assert.Empty(t, req.PayeeNote)
	assert.Equal(t, Party{PartyIDType: PartyIDTypeMSISDN, PartyID: "46733123451"}, req.Payee)

	// an empty currency keeps the default
	req = NewTransferRequest("50", "46733123451", "payout-1", WithCurrency(""))
	assert.Equal(t, DefaultCurrency, req.Currency)
}

func TestTransferRequestWireShape(t *testing.T) {
	b, err := json.Marshal(NewTransferRequest("50", "46733123451", "payout-1", WithCurrency("EUR")))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"amount": "50",
		"currency": "EUR",
		"externalId": "payout-1",
		"payee": {"partyIdType": "MSISDN", "partyId": "46733123451"},
		"payerMessage": "",
		"payeeNote": ""
	}`, string(b))
}

func TestRefundRequestWireShape(t *testing.T) {
	b, err := json.Marshal(NewRefundRequest("25", "ref-to-refund", "refund-1", WithCurrency("EUR")))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"amount": "25",
		"currency": "EUR",
		"externalId": "refund-1",
		"referenceIdToRefund": "ref-to-refund",
		"payerMessage": "",
		"payeeNote": ""
	}`, string(b))
}

// Serializing a request and parsing the equivalent status response keeps
// amount, currency and external id.
func TestRequestRoundTripThroughTransaction(t *testing.T) {
	requests := []any{
		NewPaymentRequest("100.50", "46733123450", "order-1", WithCurrency("EUR")),
		NewTransferRequest("0.01", "46733123451", "payout-1", WithCurrency("UGX")),
		NewRefundRequest("99999999.99", "ref", "refund-1"),
	}

	for _, req := range requests {
		b, err := json.Marshal(req)
		require.NoError(t, err)

		tx, err := ParseTransaction(b)
		require.NoError(t, err)

		var fields struct {
			Amount     string `json:"amount"`
			Currency   string `json:"currency"`
			ExternalID string `json:"externalId"`
		}
		require.NoError(t, json.Unmarshal(b, &fields))
		assert.Equal(t, fields.Amount, tx.Amount)
		assert.Equal(t, fields.Currency, tx.Currency)
		assert.Equal(t, fields.ExternalID, tx.ExternalID)
	}
}

func TestAmountHelpers(t *testing.T) {
	d, err := ParseAmount(" 100.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100.5")))
	assert.Equal(t, "100.5", FormatAmount(d))

	_, err = ParseAmount("ten")
	var de DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "amount", de.Field)

	require.NoError(t, ValidateAmount("0.01"))
	require.Error(t, ValidateAmount("0"))
	require.Error(t, ValidateAmount("-5"))
	require.Error(t, ValidateAmount(""))
}
