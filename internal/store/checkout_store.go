package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/taskshop/internal/model"
)

// RecordCheckout stores a receipt and its lines in one transaction.
func (s *SQLiteStore) RecordCheckout(ctx context.Context, r model.Receipt) error {
	if len(r.Lines) == 0 {
		return fmt.Errorf("checkout %s has no lines", r.ID)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO checkouts (id, email, subtotal, shipping, tax, grand_total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Email,
		r.Totals.Subtotal, r.Totals.Shipping, r.Totals.Tax, r.Totals.GrandTotal,
		r.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting checkout %s: %w", r.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO checkout_lines (
			checkout_id, position, product_id, product_name, category, unit_price, quantity
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing line statement: %w", err)
	}
	defer stmt.Close()

	for i, line := range r.Lines {
		_, err := stmt.ExecContext(ctx,
			r.ID, i, line.Product.ID, line.Product.Name, line.Product.Category,
			line.Product.Price, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("inserting line %d of checkout %s: %w", i, r.ID, err)
		}
	}

	return tx.Commit()
}

// GetCheckouts returns the most recent checkouts for email, newest first.
// An empty email matches every checkout. limit <= 0 means no limit.
func (s *SQLiteStore) GetCheckouts(ctx context.Context, email string, limit int) ([]model.Receipt, error) {
	query := "SELECT id, email, subtotal, shipping, tax, grand_total, created_at FROM checkouts"
	var args []interface{}
	if email != "" {
		query += " WHERE email = ? COLLATE NOCASE"
		args = append(args, email)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying checkouts: %w", err)
	}

	var receipts []model.Receipt
	for rows.Next() {
		r, err := scanCheckout(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range receipts {
		lines, err := s.getCheckoutLines(ctx, receipts[i].ID)
		if err != nil {
			return nil, err
		}
		receipts[i].Lines = lines
	}

	return receipts, nil
}

func (s *SQLiteStore) getCheckoutLines(ctx context.Context, checkoutID string) ([]model.CartLine, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT product_id, product_name, category, unit_price, quantity
		FROM checkout_lines WHERE checkout_id = ? ORDER BY position`, checkoutID)
	if err != nil {
		return nil, fmt.Errorf("querying lines of checkout %s: %w", checkoutID, err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		err := rows.Scan(
			&line.Product.ID, &line.Product.Name, &line.Product.Category,
			&line.Product.Price, &line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning checkout line row: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// scanCheckout scans a checkout row from a sqlx.Rows result set.
func scanCheckout(rows *sqlx.Rows) (model.Receipt, error) {
	var (
		r         model.Receipt
		createdAt time.Time
	)

	err := rows.Scan(
		&r.ID, &r.Email,
		&r.Totals.Subtotal, &r.Totals.Shipping, &r.Totals.Tax, &r.Totals.GrandTotal,
		&createdAt,
	)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("scanning checkout row: %w", err)
	}
	r.CreatedAt = createdAt

	return r, nil
}
