package momo

import (
	"context"

	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/payment"
	"momoapi/internal/provider"
)

const pathRequestToPay = "v1_0/requesttopay"

// Collection receives money from payers
type Collection struct {
	*product
}

// NewCollection creates a collection client. cfg must carry an api user and key.
func NewCollection(cfg credential.Config, env provider.Environment, opts ...Option) (*Collection, error) {
	p, err := newProduct(credential.ProductCollection, cfg, env, opts)
	if err != nil {
		return nil, err
	}
	return &Collection{product: p}, nil
}

// RequestToPay asks the payer to approve a payment and returns the reference
// id to poll its status with.
func (c *Collection) RequestToPay(ctx context.Context, req payment.PaymentRequest) (string, error) {
	if c.validator != nil {
		if err := c.validator.ValidatePaymentRequest(req); err != nil {
			return "", err
		}
	}
	return c.postWithReference(ctx, provider.OpRequestToPay, pathRequestToPay, req)
}

// GetPaymentStatus returns the current state of a request-to-pay
func (c *Collection) GetPaymentStatus(ctx context.Context, referenceID string) (payment.Transaction, error) {
	return c.getTransaction(ctx, provider.OpPaymentStatus, pathRequestToPay, referenceID)
}

// QuickPay builds a payment request and submits it. An empty currency uses
// payment.DefaultCurrency.
func (c *Collection) QuickPay(ctx context.Context, amount, phone, reference, currency string) (string, error) {
	req := payment.NewPaymentRequest(amount, phone, reference, payment.WithCurrency(currency))
	return c.RequestToPay(ctx, req)
}
