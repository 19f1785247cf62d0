package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"momoapi/internal/domain/wire"

	"github.com/shopspring/decimal"
)

// Status is the state of a transaction as reported by a status query.
// Values other than the three below are preserved verbatim.
type Status string

const (
	StatusSuccessful Status = "SUCCESSFUL"
	StatusPending    Status = "PENDING"
	StatusFailed     Status = "FAILED"
)

// Reason explains why a transaction failed
type Reason struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Transaction is the result of a status query on a payment, deposit,
// transfer or refund
type Transaction struct {
	Amount                 string
	Currency               string
	Status                 Status
	FinancialTransactionID string
	ExternalID             string
	PayerMessage           string
	PayeeNote              string
	Payer                  *Party
	Payee                  *Party
	Reason                 *Reason
}

// ParseTransaction parses a status-query response body. Missing fields are
// left empty and fields of an unexpected shape are dropped; only a body that
// is not a JSON object is rejected.
func ParseTransaction(body []byte) (Transaction, error) {
	var raw struct {
		Amount                 text            `json:"amount"`
		Currency               text            `json:"currency"`
		Status                 text            `json:"status"`
		FinancialTransactionID text            `json:"financialTransactionId"`
		ExternalID             text            `json:"externalId"`
		PayerMessage           text            `json:"payerMessage"`
		PayeeNote              text            `json:"payeeNote"`
		Payer                  json.RawMessage `json:"payer"`
		Payee                  json.RawMessage `json:"payee"`
		Reason                 json.RawMessage `json:"reason"`
	}
	if err := wire.DecodeObject(body, &raw); err != nil {
		return Transaction{}, fmt.Errorf("failed to parse transaction: %w", err)
	}

	return Transaction{
		Amount:                 string(raw.Amount),
		Currency:               string(raw.Currency),
		Status:                 Status(raw.Status),
		FinancialTransactionID: string(raw.FinancialTransactionID),
		ExternalID:             string(raw.ExternalID),
		PayerMessage:           string(raw.PayerMessage),
		PayeeNote:              string(raw.PayeeNote),
		Payer:                  parseParty(raw.Payer),
		Payee:                  parseParty(raw.Payee),
		Reason:                 parseReason(raw.Reason),
	}, nil
}

// parseParty returns nil unless b is a party object
func parseParty(b json.RawMessage) *Party {
	if !wire.IsObject(b) {
		return nil
	}
	var raw struct {
		PartyIDType text `json:"partyIdType"`
		PartyID     text `json:"partyId"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	return &Party{PartyIDType: string(raw.PartyIDType), PartyID: string(raw.PartyID)}
}

// parseReason accepts {"code","message"} or a bare code string; anything
// else yields nil
func parseReason(b json.RawMessage) *Reason {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var code string
		if err := json.Unmarshal(b, &code); err != nil {
			return nil
		}
		return &Reason{Code: code}
	}
	if !wire.IsObject(b) {
		return nil
	}
	var raw struct {
		Code    text `json:"code"`
		Message text `json:"message"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	return &Reason{Code: string(raw.Code), Message: string(raw.Message)}
}

// IsSuccessful checks if the transaction settled
func (t Transaction) IsSuccessful() bool {
	return t.Status == StatusSuccessful
}

// IsPending checks if the transaction is still awaiting the counterparty
func (t Transaction) IsPending() bool {
	return t.Status == StatusPending
}

// IsFailed checks if the transaction was rejected
func (t Transaction) IsFailed() bool {
	return t.Status == StatusFailed
}

// AmountDecimal returns the amount as a decimal
func (t Transaction) AmountDecimal() (decimal.Decimal, error) {
	return ParseAmount(t.Amount)
}

// AccountBalance is the available balance of a product account
type AccountBalance struct {
	AvailableBalance string
	Currency         string
}

// ParseAccountBalance parses a balance-query response body
func ParseAccountBalance(body []byte) (AccountBalance, error) {
	var raw struct {
		AvailableBalance text `json:"availableBalance"`
		Currency         text `json:"currency"`
	}
	if err := wire.DecodeObject(body, &raw); err != nil {
		return AccountBalance{}, fmt.Errorf("failed to parse account balance: %w", err)
	}
	return AccountBalance{
		AvailableBalance: string(raw.AvailableBalance),
		Currency:         string(raw.Currency),
	}, nil
}

// AvailableDecimal returns the available balance as a decimal
func (b AccountBalance) AvailableDecimal() (decimal.Decimal, error) {
	return ParseAmount(b.AvailableBalance)
}

// text is a string field that tolerates numbers and null on the wire.
// Some deployments serialize amounts as JSON numbers. Objects and arrays
// decode to "".
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	s := string(b)
	switch {
	case s == "null":
		*t = ""
	case strings.HasPrefix(s, `"`):
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = text(v)
	case s == "true" || s == "false":
		*t = text(s)
	case strings.HasPrefix(s, "{") || strings.HasPrefix(s, "["):
		*t = ""
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("unexpected value %s", s)
		}
		*t = text(n.String())
	}
	return nil
}
