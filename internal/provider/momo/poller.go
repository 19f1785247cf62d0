package momo

import (
	"context"
	"errors"
	"time"

	"momoapi/internal/domain/payment"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrStillPending is returned when polling stops while the transaction is still PENDING
var ErrStillPending = errors.New("momo: transaction still pending")

// StatusFunc queries the status of one transaction, e.g. Collection.GetPaymentStatus
type StatusFunc func(ctx context.Context, referenceID string) (payment.Transaction, error)

// PollerOptions controls how often and for how long a status is polled
type PollerOptions struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	// MaxElapsedTime bounds the whole wait. 0 polls until ctx is done.
	MaxElapsedTime time.Duration
	Logger         zerolog.Logger
}

// DefaultPollerOptions returns sensible defaults
func DefaultPollerOptions() PollerOptions {
	return PollerOptions{
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
		MaxElapsedTime:  5 * time.Minute,
		Logger:          log.Logger,
	}
}

// Poller waits for a transaction to leave PENDING. A failed status call ends
// the wait immediately; it is never retried.
type Poller struct {
	status StatusFunc
	opts   PollerOptions
}

// NewPoller creates a poller over status
func NewPoller(status StatusFunc, opts PollerOptions) *Poller {
	defaults := DefaultPollerOptions()
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaults.InitialInterval
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = defaults.MaxInterval
	}
	return &Poller{status: status, opts: opts}
}

// Wait polls referenceID until it is no longer pending. On ErrStillPending or a
// context error the last observed transaction is returned with the error.
func (p *Poller) Wait(ctx context.Context, referenceID string) (payment.Transaction, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.opts.InitialInterval
	b.MaxInterval = p.opts.MaxInterval
	b.MaxElapsedTime = p.opts.MaxElapsedTime
	b.Reset()

	var last payment.Transaction
	operation := func() error {
		tx, err := p.status(ctx, referenceID)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = tx
		if tx.IsPending() {
			return ErrStillPending
		}
		return nil
	}

	notify := func(err error, next time.Duration) {
		p.opts.Logger.Debug().
			Str("reference_id", referenceID).
			Dur("next_poll", next).
			Msg("transaction still pending")
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return last, err
	}

	p.opts.Logger.Info().
		Str("reference_id", referenceID).
		Str("status", string(last.Status)).
		Msg("transaction settled")

	return last, nil
}
