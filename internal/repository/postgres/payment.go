package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

// Record appends the payment and brings the owning dues record's cached
// status up to date in one transaction. The dues row is locked with
// SELECT ... FOR UPDATE so concurrent payments against the same record
// serialize; both writes commit together or neither does.
func (r *paymentRepository) Record(ctx context.Context, p *domain.Payment) (*domain.Dues, int64, error) {
	logger.EnterMethod("paymentRepository.Record", "duesID", p.DuesID, "amount", p.Amount)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	d := &domain.Dues{}
	lockQuery := `SELECT ` + duesColumns + ` FROM dues WHERE id = $1 FOR UPDATE`
	err = tx.QueryRowContext(ctx, lockQuery, p.DuesID).
		Scan(&d.ID, &d.OrgID, &d.MemberID, &d.Month, &d.Year, &d.Amount, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("paymentRepository.Record", domain.ErrNotFound, "duesID", p.DuesID)
		return nil, 0, domain.ErrNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	p.MemberID = d.MemberID
	now := time.Now()
	insertQuery := `INSERT INTO payments (dues_id, member_id, amount, method, note, reference, created_by, created_at)
	                VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, insertQuery, p.DuesID, p.MemberID, p.Amount, p.Method, nullString(p.Note), p.Reference, p.CreatedBy, now).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		logger.ExitMethodWithError("paymentRepository.Record", err, "duesID", p.DuesID)
		return nil, 0, err
	}

	var total int64
	sumQuery := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE dues_id = $1`
	if err := tx.QueryRowContext(ctx, sumQuery, p.DuesID).Scan(&total); err != nil {
		logger.ExitMethodWithError("paymentRepository.Record", err, "duesID", p.DuesID)
		return nil, 0, err
	}

	d.Status = domain.DeriveStatus(d.Amount, total)
	d.UpdatedAt = now
	updateQuery := `UPDATE dues SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := tx.ExecContext(ctx, updateQuery, d.Status, now, d.ID); err != nil {
		logger.ExitMethodWithError("paymentRepository.Record", err, "duesID", p.DuesID)
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	logger.ExitMethod("paymentRepository.Record", "paymentID", p.ID, "duesID", d.ID, "status", d.Status, "totalPaid", total)
	return d, total, nil
}

func (r *paymentRepository) ListByDues(ctx context.Context, duesID int32) ([]domain.Payment, error) {
	query := `SELECT id, dues_id, member_id, amount, method, COALESCE(note, ''), reference, created_by, created_at
	          FROM payments WHERE dues_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, duesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.DuesID, &p.MemberID, &p.Amount, &p.Method, &p.Note, &p.Reference, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// nullString converts an empty string to SQL NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
