package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskshop/internal/logging"
	"github.com/nhle/taskshop/internal/model"
)

// ErrEmptyCart is returned when checking out a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutLog records completed checkouts.
type CheckoutLog interface {
	RecordCheckout(ctx context.Context, r model.Receipt) error
}

// ReceiptWriter renders a receipt somewhere the user can find it and
// returns its location.
type ReceiptWriter interface {
	WriteReceipt(r model.Receipt) (string, error)
}

// Checkout is the order submission stub. It takes no payment and leaves the
// cart untouched.
type Checkout struct {
	ledger  *Ledger
	pricing Pricing
	log     CheckoutLog
	outbox  ReceiptWriter
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewCheckout wires a checkout over ledger. log and outbox may be nil.
func NewCheckout(ledger *Ledger, pricing Pricing, log CheckoutLog, outbox ReceiptWriter, logger logrus.FieldLogger) *Checkout {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Checkout{
		ledger:  ledger,
		pricing: pricing,
		log:     log,
		outbox:  outbox,
		logger:  logger,
		now:     time.Now,
	}
}

// Result describes a submitted order.
type Result struct {
	Receipt model.Receipt
	// ReceiptPath is where the receipt was written; empty without an outbox.
	ReceiptPath string
}

// Submit snapshots the cart for email and records it.
func (c *Checkout) Submit(ctx context.Context, email string) (Result, error) {
	lines := c.ledger.Lines()
	if len(lines) == 0 {
		return Result{}, ErrEmptyCart
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	r := model.Receipt{
		ID:        uuid.New().String(),
		Email:     email,
		Lines:     lines,
		Totals:    c.pricing.Totals(subtotal),
		CreatedAt: c.now().UTC(),
	}

	entry := c.logger.WithFields(logrus.Fields{
		"receipt": r.ID,
		"email":   r.Email,
		"lines":   len(r.Lines),
		"total":   r.Totals.GrandTotal,
	})

	if c.log != nil {
		if err := c.log.RecordCheckout(ctx, r); err != nil {
			entry.WithError(err).Error("checkout not recorded")
			return Result{}, fmt.Errorf("recording checkout: %w", err)
		}
	}

	res := Result{Receipt: r}
	if c.outbox != nil {
		path, err := c.outbox.WriteReceipt(r)
		if err != nil {
			entry.WithError(err).Warn("receipt not written")
			return res, fmt.Errorf("writing receipt: %w", err)
		}
		res.ReceiptPath = path
	}

	entry.Info("checkout submitted")
	return res, nil
}
