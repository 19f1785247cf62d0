package payment

import (
	"fmt"
	"strings"
)

// DefaultCurrency is used when a request is built without an explicit currency
const DefaultCurrency = "XAF"

// PartyIDTypeMSISDN is the only party id type requests are sent with
const PartyIDTypeMSISDN = "MSISDN"

// Party identifies the payer or payee of a transaction
type Party struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// MSISDN returns a Party for a mobile phone number
func MSISDN(number string) Party {
	return Party{PartyIDType: PartyIDTypeMSISDN, PartyID: strings.TrimSpace(number)}
}

// PaymentRequest asks a payer to pay (collection request-to-pay)
type PaymentRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payer        Party  `json:"payer"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

// TransferRequest sends money to a payee (disbursement deposit and transfer)
type TransferRequest struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payee        Party  `json:"payee"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

// RefundRequest refunds a previously completed transaction
type RefundRequest struct {
	Amount              string `json:"amount"`
	Currency            string `json:"currency"`
	ExternalID          string `json:"externalId"`
	ReferenceIDToRefund string `json:"referenceIdToRefund"`
	PayerMessage        string `json:"payerMessage"`
	PayeeNote           string `json:"payeeNote"`
}

// RequestOption customizes the optional fields of a request
type RequestOption func(*requestOptions)

type requestOptions struct {
	currency     string
	payerMessage string
	payeeNote    string
}

// WithCurrency overrides DefaultCurrency. An empty code keeps the default.
func WithCurrency(code string) RequestOption {
	return func(o *requestOptions) {
		if code = strings.TrimSpace(code); code != "" {
			o.currency = code
		}
	}
}

// WithPayerMessage sets the message shown on the payer's statement
func WithPayerMessage(msg string) RequestOption {
	return func(o *requestOptions) {
		o.payerMessage = msg
	}
}

// WithPayeeNote sets the note shown to the payee
func WithPayeeNote(note string) RequestOption {
	return func(o *requestOptions) {
		o.payeeNote = note
	}
}

func buildOptions(opts []RequestOption) requestOptions {
	o := requestOptions{currency: DefaultCurrency}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewPaymentRequest creates a request-to-pay body for the given payer
func NewPaymentRequest(amount, payer, externalID string, opts ...RequestOption) PaymentRequest {
	o := buildOptions(opts)
	return PaymentRequest{
		Amount:       amount,
		Currency:     o.currency,
		ExternalID:   externalID,
		Payer:        MSISDN(payer),
		PayerMessage: o.payerMessage,
		PayeeNote:    o.payeeNote,
	}
}

// NewTransferRequest creates a deposit or transfer body for the given payee
func NewTransferRequest(amount, payee, externalID string, opts ...RequestOption) TransferRequest {
	o := buildOptions(opts)
	return TransferRequest{
		Amount:       amount,
		Currency:     o.currency,
		ExternalID:   externalID,
		Payee:        MSISDN(payee),
		PayerMessage: o.payerMessage,
		PayeeNote:    o.payeeNote,
	}
}

// NewRefundRequest creates a refund body for the transaction identified by referenceIDToRefund
func NewRefundRequest(amount, referenceIDToRefund, externalID string, opts ...RequestOption) RefundRequest {
	o := buildOptions(opts)
	return RefundRequest{
		Amount:              amount,
		Currency:            o.currency,
		ExternalID:          externalID,
		ReferenceIDToRefund: strings.TrimSpace(referenceIDToRefund),
		PayerMessage:        o.payerMessage,
		PayeeNote:           o.payeeNote,
	}
}

// DomainError represents a request that fails local validation
type DomainError struct {
	Field   string
	Message string
}

func (e DomainError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
