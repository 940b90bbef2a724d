package cart

import (
	"context"

	"github.com/nhle/taskshop/internal/model"
)

// mockCheckoutLog implements CheckoutLog for testing
type mockCheckoutLog struct {
	Recorded []model.Receipt
	Err      error
}

func (m *mockCheckoutLog) RecordCheckout(_ context.Context, r model.Receipt) error {
	if m.Err != nil {
		return m.Err
	}
	m.Recorded = append(m.Recorded, r)
	return nil
}

// mockOutbox implements ReceiptWriter for testing
type mockOutbox struct {
	Written []model.Receipt
	Path    string
	Err     error
}

func (m *mockOutbox) WriteReceipt(r model.Receipt) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.Written = append(m.Written, r)
	return m.Path, nil
}
