package base

import (
	"errors"
	"regexp"
	"strings"

	"momoapi/internal/domain/payment"
	"momoapi/internal/provider"
)

// msisdnPattern accepts international numbers without the leading plus (E.164 allows 15 digits)
var msisdnPattern = regexp.MustCompile(`^\d{8,15}$`)

// RequestValidator checks request bodies before they are sent.
// It never rewrites a request: numbers and amounts go out as the caller gave them.
type RequestValidator struct{}

// NewRequestValidator creates a new request validator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidatePaymentRequest validates a request-to-pay body
func (v *RequestValidator) ValidatePaymentRequest(req payment.PaymentRequest) error {
	if err := v.validateCommon(req.Amount, req.Currency); err != nil {
		return err
	}
	return v.ValidateMSISDN("payer", req.Payer.PartyID)
}

// ValidateTransferRequest validates a deposit or transfer body
func (v *RequestValidator) ValidateTransferRequest(req payment.TransferRequest) error {
	if err := v.validateCommon(req.Amount, req.Currency); err != nil {
		return err
	}
	return v.ValidateMSISDN("payee", req.Payee.PartyID)
}

// ValidateRefundRequest validates a refund body
func (v *RequestValidator) ValidateRefundRequest(req payment.RefundRequest) error {
	if err := v.validateCommon(req.Amount, req.Currency); err != nil {
		return err
	}
	if strings.TrimSpace(req.ReferenceIDToRefund) == "" {
		return &provider.ValidationError{
			Field:   "referenceIdToRefund",
			Message: "reference id to refund is required",
		}
	}
	return nil
}

// ValidateMSISDN checks that number looks like an international phone number
func (v *RequestValidator) ValidateMSISDN(field, number string) error {
	if !msisdnPattern.MatchString(number) {
		return &provider.ValidationError{
			Field:   field,
			Message: "party id must be 8 to 15 digits",
		}
	}
	return nil
}

func (v *RequestValidator) validateCommon(amount, currency string) error {
	if err := payment.ValidateAmount(amount); err != nil {
		var de payment.DomainError
		if errors.As(err, &de) {
			return &provider.ValidationError{Field: de.Field, Message: de.Message, Err: err}
		}
		return &provider.ValidationError{Field: "amount", Message: err.Error(), Err: err}
	}
	if len(strings.TrimSpace(currency)) != 3 {
		return &provider.ValidationError{
			Field:   "currency",
			Message: "currency must be a 3-letter ISO 4217 code",
		}
	}
	return nil
}
