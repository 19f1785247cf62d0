package momo

import (
	"context"

	"momoapi/internal/domain/credential"
	"momoapi/internal/domain/payment"
	"momoapi/internal/provider"
)

const (
	pathDeposit  = "v1_0/deposit"
	pathTransfer = "v1_0/transfer"
	pathRefund   = "v1_0/refund"
)

// Disbursement sends money to payees
type Disbursement struct {
	*product
}

// NewDisbursement creates a disbursement client. cfg must carry an api user and key.
func NewDisbursement(cfg credential.Config, env provider.Environment, opts ...Option) (*Disbursement, error) {
	p, err := newProduct(credential.ProductDisbursement, cfg, env, opts)
	if err != nil {
		return nil, err
	}
	return &Disbursement{product: p}, nil
}

// Deposit credits the payee's account. The body is payee-shaped, the same as Transfer.
func (d *Disbursement) Deposit(ctx context.Context, req payment.TransferRequest) (string, error) {
	if d.validator != nil {
		if err := d.validator.ValidateTransferRequest(req); err != nil {
			return "", err
		}
	}
	return d.postWithReference(ctx, provider.OpDeposit, pathDeposit, req)
}

// GetDepositStatus returns the current state of a deposit
func (d *Disbursement) GetDepositStatus(ctx context.Context, referenceID string) (payment.Transaction, error) {
	return d.getTransaction(ctx, provider.OpDepositStatus, pathDeposit, referenceID)
}

// Transfer sends money from the disbursement account to the payee
func (d *Disbursement) Transfer(ctx context.Context, req payment.TransferRequest) (string, error) {
	if d.validator != nil {
		if err := d.validator.ValidateTransferRequest(req); err != nil {
			return "", err
		}
	}
	return d.postWithReference(ctx, provider.OpTransfer, pathTransfer, req)
}

// GetTransferStatus returns the current state of a transfer
func (d *Disbursement) GetTransferStatus(ctx context.Context, referenceID string) (payment.Transaction, error) {
	return d.getTransaction(ctx, provider.OpTransferStatus, pathTransfer, referenceID)
}

// Refund returns money for a previous transaction
func (d *Disbursement) Refund(ctx context.Context, req payment.RefundRequest) (string, error) {
	if d.validator != nil {
		if err := d.validator.ValidateRefundRequest(req); err != nil {
			return "", err
		}
	}
	return d.postWithReference(ctx, provider.OpRefund, pathRefund, req)
}

// GetRefundStatus returns the current state of a refund
func (d *Disbursement) GetRefundStatus(ctx context.Context, referenceID string) (payment.Transaction, error) {
	return d.getTransaction(ctx, provider.OpRefundStatus, pathRefund, referenceID)
}
