package momo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/payment"
	"momoapi/internal/momotest"
	"momoapi/internal/provider"
	"momoapi/internal/provider/momo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisbursement(t *testing.T, srv *momotest.Server, opts ...momo.Option) *momo.Disbursement {
	t.Helper()
	d, err := momo.NewDisbursement(testConfig(t, credential.ProductDisbursement, ""), provider.EnvironmentSandbox, testOptions(srv, opts...)...)
	require.NoError(t, err)
	return d
}

func TestDisbursementOperations(t *testing.T) {
	srv := momotest.New(t)
	d := newDisbursement(t, srv)
	ctx := context.Background()
	transfer := payment.NewTransferRequest("50", "46733123451", "payout-1", payment.WithCurrency("EUR"))

	tests := []struct {
		name   string
		path   string
		submit func() (string, error)
		status func(string) (payment.Transaction, error)
	}{
		{
			name:   "deposit",
			path:   "/disbursement/v1_0/deposit",
			submit: func() (string, error) { return d.Deposit(ctx, transfer) },
			status: func(id string) (payment.Transaction, error) { return d.GetDepositStatus(ctx, id) },
		},
		{
			name:   "transfer",
			path:   "/disbursement/v1_0/transfer",
			submit: func() (string, error) { return d.Transfer(ctx, transfer) },
			status: func(id string) (payment.Transaction, error) { return d.GetTransferStatus(ctx, id) },
		},
		{
			name: "refund",
			path: "/disbursement/v1_0/refund",
			submit: func() (string, error) {
				return d.Refund(ctx, payment.NewRefundRequest("50", "0d6a4f51-4b3c-4a53-9d57-0f7f1e2d3c4b", "refund-1", payment.WithCurrency("EUR")))
			},
			status: func(id string) (payment.Transaction, error) { return d.GetRefundStatus(ctx, id) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			referenceID, err := tt.submit()
			require.NoError(t, err)
			requireUUID(t, referenceID)

			posts := srv.RequestsTo(http.MethodPost, tt.path)
			require.Len(t, posts, 1)
			assert.Equal(t, referenceID, posts[0].Header.Get(provider.HeaderReferenceID))
			assert.Equal(t, "sandbox", posts[0].Header.Get(provider.HeaderTargetEnvironment))
			assert.Equal(t, "Bearer "+momotest.AccessToken, posts[0].Header.Get(provider.HeaderAuthorization))

			tx, err := tt.status(referenceID)
			require.NoError(t, err)
			assert.True(t, tx.IsPending())
			assert.Equal(t, "50", tx.Amount)
			assert.Equal(t, "EUR", tx.Currency)
			assert.Equal(t, tt.path+"/"+referenceID, srv.LastRequest().Path)

			srv.SetStatus(referenceID, "SUCCESSFUL")
			tx, err = tt.status(referenceID)
			require.NoError(t, err)
			assert.True(t, tx.IsSuccessful())
			assert.Equal(t, "363440463", tx.FinancialTransactionID)
		})
	}
}

func TestDepositBodyCarriesPayee(t *testing.T) {
	srv := momotest.New(t)
	d := newDisbursement(t, srv)

	_, err := d.Deposit(context.Background(), payment.NewTransferRequest("50", "46733123451", "payout-1"))
	require.NoError(t, err)

	body := srv.RequestsTo(http.MethodPost, "/disbursement/v1_0/deposit")[0].Body
	assert.JSONEq(t, `{
		"amount": "50",
		"currency": "XAF",
		"externalId": "payout-1",
		"payee": {"partyIdType": "MSISDN", "partyId": "46733123451"},
		"payerMessage": "",
		"payeeNote": ""
	}`, string(body))
}

func TestRefundBodyCarriesReference(t *testing.T) {
	srv := momotest.New(t)
	d := newDisbursement(t, srv)

	_, err := d.Refund(context.Background(), payment.NewRefundRequest("5", "orig-ref", "refund-1"))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(srv.RequestsTo(http.MethodPost, "/disbursement/v1_0/refund")[0].Body, &body))
	assert.Equal(t, "orig-ref", body["referenceIdToRefund"])
	assert.NotContains(t, body, "payee")
}

func TestStatusOfAnotherResourceIsNotFound(t *testing.T) {
	srv := momotest.New(t)
	d := newDisbursement(t, srv)
	ctx := context.Background()

	referenceID, err := d.Deposit(ctx, payment.NewTransferRequest("50", "46733123451", "payout-1"))
	require.NoError(t, err)

	_, err = d.GetTransferStatus(ctx, referenceID)
	require.ErrorIs(t, err, provider.ErrNotFound)
}

func TestDisbursementBalanceAndToken(t *testing.T) {
	srv := momotest.New(t)
	srv.SetBalance("250.75", "EUR")
	d := newDisbursement(t, srv)

	balance, err := d.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "250.75", balance.AvailableBalance)
	assert.Equal(t, "EUR", balance.Currency)

	assert.Len(t, srv.RequestsTo(http.MethodPost, "/disbursement/token/"), 1)
	assert.Len(t, srv.RequestsTo(http.MethodGet, "/disbursement/v1_0/account/balance"), 1)
	assert.Empty(t, srv.RequestsTo(http.MethodPost, "/collection/token/"))
}

func TestDuplicateReferenceConflict(t *testing.T) {
	srv := momotest.New(t)
	srv.Respond(http.MethodPost, "/disbursement/v1_0/transfer", http.StatusConflict,
		`{"code":"RESOURCE_ALREADY_EXIST","message":"Duplicated reference id. Creation of resource failed."}`)
	d := newDisbursement(t, srv)

	_, err := d.Transfer(context.Background(), payment.NewTransferRequest("50", "46733123451", "payout-1"))
	require.ErrorIs(t, err, provider.ErrConflict)
	assert.True(t, provider.IsConflict(err))
}

func TestStrictDisbursementValidation(t *testing.T) {
	srv := momotest.New(t)
	d := newDisbursement(t, srv, momo.WithStrictAmounts())
	ctx := context.Background()

	_, err := d.Deposit(ctx, payment.NewTransferRequest("-1", "46733123451", "p"))
	require.ErrorIs(t, err, provider.ErrInvalidRequest)
	_, err = d.Transfer(ctx, payment.NewTransferRequest("1", "abc", "p"))
	require.ErrorIs(t, err, provider.ErrInvalidRequest)
	_, err = d.Refund(ctx, payment.NewRefundRequest("1", "", "p"))
	require.ErrorIs(t, err, provider.ErrInvalidRequest)
	assert.Empty(t, srv.Requests())

	_, err = d.Transfer(ctx, payment.NewTransferRequest("1.50", "46733123451", "p"))
	require.NoError(t, err)
}
