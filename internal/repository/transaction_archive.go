package repository

import (
	"context"
	"database/sql"

	"github.com/dzmarket/payment-engine/internal/models"
)

// TransactionArchive stores finished transactions in Postgres. The
// security code is deliberately absent from the schema: one-time codes
// never survive the transaction's verification window.
type TransactionArchive struct {
	db *sql.DB
}

func NewTransactionArchive(db *sql.DB) *TransactionArchive {
	return &TransactionArchive{db: db}
}

func (r *TransactionArchive) InitDB() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS payment_transactions (
			id VARCHAR(64) PRIMARY KEY,
			order_id VARCHAR(255) NOT NULL,
			amount NUMERIC(14,2) NOT NULL,
			currency VARCHAR(3) NOT NULL,
			method VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL,
			reference VARCHAR(255),
			error_message TEXT,
			created_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_transactions_order ON payment_transactions(order_id)`,
	}

	for _, query := range queries {
		if _, err := r.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionArchive) Save(ctx context.Context, tx models.PaymentTransaction) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_transactions
			(id, order_id, amount, currency, method, status, reference, error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			reference = EXCLUDED.reference,
			error_message = EXCLUDED.error_message,
			completed_at = EXCLUDED.completed_at
	`, tx.ID, tx.OrderID, tx.Amount, tx.Currency, tx.Method, tx.Status,
		nullString(tx.Reference), nullString(tx.ErrorMessage), tx.CreatedAt, tx.CompletedAt)
	return err
}

func (r *TransactionArchive) GetByOrderID(ctx context.Context, orderID string) ([]models.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, amount, currency, method, status, reference, error_message, created_at, completed_at
		FROM payment_transactions WHERE order_id = $1 ORDER BY created_at DESC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentTransaction
	for rows.Next() {
		var tx models.PaymentTransaction
		var reference, errMsg sql.NullString
		var completedAt sql.NullTime
		if err := rows.Scan(&tx.ID, &tx.OrderID, &tx.Amount, &tx.Currency, &tx.Method,
			&tx.Status, &reference, &errMsg, &tx.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		tx.Reference = reference.String
		tx.ErrorMessage = errMsg.String
		if completedAt.Valid {
			t := completedAt.Time
			tx.CompletedAt = &t
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
