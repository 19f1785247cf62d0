package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionSuccessful(t *testing.T) {
	tx, err := ParseTransaction([]byte(`{
		"amount": "100",
		"currency": "EUR",
		"financialTransactionId": "363440463",
		"externalId": "order-123",
		"payer": {"partyIdType": "MSISDN", "partyId": "46733123450"},
		"payerMessage": "Payment",
		"payeeNote": "Thank you",
		"status": "SUCCESSFUL"
	}`))
	require.NoError(t, err)

	assert.True(t, tx.IsSuccessful())
	assert.False(t, tx.IsPending())
	assert.False(t, tx.IsFailed())
	assert.Equal(t, "363440463", tx.FinancialTransactionID)
	require.NotNil(t, tx.Payer)
	assert.Equal(t, "46733123450", tx.Payer.PartyID)
	assert.Nil(t, tx.Payee)
	assert.Nil(t, tx.Reason)

	amount, err := tx.AmountDecimal()
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(100)))
}

func TestParseTransactionFailedReason(t *testing.T) {
	tx, err := ParseTransaction([]byte(`{
		"amount": "100",
		"currency": "EUR",
		"status": "FAILED",
		"reason": {"code": "PAYER_NOT_FOUND", "message": "Payer not found"}
	}`))
	require.NoError(t, err)
	assert.True(t, tx.IsFailed())
	require.NotNil(t, tx.Reason)
	assert.Equal(t, "PAYER_NOT_FOUND", tx.Reason.Code)
	assert.Equal(t, "Payer not found", tx.Reason.Message)

	tx, err = ParseTransaction([]byte(`{"status": "FAILED", "reason": "APPROVAL_REJECTED"}`))
	require.NoError(t, err)
	require.NotNil(t, tx.Reason)
	assert.Equal(t, "APPROVAL_REJECTED", tx.Reason.Code)
}

func TestParseTransactionPreservesUnknownStatus(t *testing.T) {
	tx, err := ParseTransaction([]byte(`{"status": "ONGOING"}`))
	require.NoError(t, err)
	assert.Equal(t, Status("ONGOING"), tx.Status)
	assert.False(t, tx.IsSuccessful())
	assert.False(t, tx.IsPending())
	assert.False(t, tx.IsFailed())
}

func TestParseTransactionDefaultsMissingFields(t *testing.T) {
	tx, err := ParseTransaction([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, Transaction{}, tx)

	// numeric amounts and nulls are tolerated
	tx, err = ParseTransaction([]byte(`{"amount": 100.5, "currency": null, "status": "PENDING"}`))
	require.NoError(t, err)
	assert.Equal(t, "100.5", tx.Amount)
	assert.Empty(t, tx.Currency)
	assert.True(t, tx.IsPending())
}

func TestParseTransactionToleratesOddFieldShapes(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		expect Transaction
	}{
		{
			name: "numeric party id",
			body: `{"status":"SUCCESSFUL","payer":{"partyIdType":"MSISDN","partyId":46733123450}}`,
			expect: Transaction{
				Status: StatusSuccessful,
				Payer:  &Party{PartyIDType: "MSISDN", PartyID: "46733123450"},
			},
		},
		{
			name:   "party as bare string",
			body:   `{"status":"SUCCESSFUL","payee":"46733123450"}`,
			expect: Transaction{Status: StatusSuccessful},
		},
		{
			name:   "numeric reason",
			body:   `{"status":"FAILED","reason":42}`,
			expect: Transaction{Status: StatusFailed},
		},
		{
			name:   "object amount",
			body:   `{"amount":{"value":"100"}}`,
			expect: Transaction{},
		},
		{
			name:   "array currency and null parties",
			body:   `{"currency":["EUR"],"payer":null,"payee":[],"status":"PENDING"}`,
			expect: Transaction{Status: StatusPending},
		},
		{
			name: "reason with numeric code",
			body: `{"status":"FAILED","reason":{"code":500,"message":"Internal"}}`,
			expect: Transaction{
				Status: StatusFailed,
				Reason: &Reason{Code: "500", Message: "Internal"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := ParseTransaction([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, tx)
		})
	}
}

func TestParseTransactionRejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `"SUCCESSFUL"`, `<html>`, `{"amount":`} {
		_, err := ParseTransaction([]byte(body))
		require.Error(t, err, body)
	}
}

func TestParseAccountBalance(t *testing.T) {
	balance, err := ParseAccountBalance([]byte(`{"availableBalance":"1000","currency":"EUR"}`))
	require.NoError(t, err)
	assert.Equal(t, AccountBalance{AvailableBalance: "1000", Currency: "EUR"}, balance)

	available, err := balance.AvailableDecimal()
	require.NoError(t, err)
	assert.True(t, available.Equal(decimal.NewFromInt(1000)))

	balance, err = ParseAccountBalance([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, AccountBalance{}, balance)

	_, err = ParseAccountBalance([]byte(`[]`))
	require.Error(t, err)
}
