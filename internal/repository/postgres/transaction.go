package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (org_id, type, amount, category, note, occurred_at, created_by, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, t.OrgID, t.Type, t.Amount, t.Category, nullString(t.Note), t.OccurredAt, t.CreatedBy, time.Now()).
		Scan(&t.ID, &t.CreatedAt)
}

func (r *transactionRepository) ListByOrg(ctx context.Context, orgID int32, txType, category string, page, pageSize int32) ([]domain.Transaction, int32, error) {
	baseWhere := ` WHERE org_id = $1`
	args := []interface{}{orgID}
	argIndex := 2

	if txType != "" {
		baseWhere += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, txType)
		argIndex++
	}
	if category != "" {
		baseWhere += fmt.Sprintf(" AND category = $%d", argIndex)
		args = append(args, category)
		argIndex++
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM transactions`+baseWhere, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, org_id, type, amount, category, COALESCE(note, ''), occurred_at, created_by, created_at
	          FROM transactions` + baseWhere +
		fmt.Sprintf(" ORDER BY occurred_at DESC, id DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.OrgID, &t.Type, &t.Amount, &t.Category, &t.Note, &t.OccurredAt, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, count, rows.Err()
}

func (r *transactionRepository) Summary(ctx context.Context, orgID int32, month, year int) (*domain.TransactionSummary, error) {
	summary := &domain.TransactionSummary{}
	query := `SELECT
	            COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
	            COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
	          FROM transactions
	          WHERE org_id = $1
	            AND EXTRACT(MONTH FROM occurred_at) = $2
	            AND EXTRACT(YEAR FROM occurred_at) = $3`
	err := r.db.QueryRowContext(ctx, query, orgID, month, year).Scan(&summary.IncomeTotal, &summary.ExpenseTotal)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	summary.Net = summary.IncomeTotal - summary.ExpenseTotal
	return summary, nil
}
