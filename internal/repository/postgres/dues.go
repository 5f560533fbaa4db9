package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type duesRepository struct {
	db *sql.DB
}

func NewDuesRepository(db *sql.DB) repository.DuesRepository {
	return &duesRepository{db: db}
}

const duesColumns = `id, org_id, member_id, month, year, amount, status, created_at, updated_at`

// recomputeStatusQuery rewrites the cached status column from the payment
// sum; the invariant PAID <=> sum >= amount is enforced here on every
// mutation path.
const recomputeStatusQuery = `
	UPDATE dues SET status = CASE
		WHEN paid.total >= dues.amount THEN 'PAID'
		WHEN paid.total > 0 THEN 'PARTIAL'
		ELSE 'PENDING'
	END, updated_at = $2
	FROM (SELECT COALESCE(SUM(amount), 0) AS total FROM payments WHERE dues_id = $1) AS paid
	WHERE dues.id = $1
	RETURNING dues.status`

func scanDues(row *sql.Row, d *domain.Dues) error {
	return row.Scan(&d.ID, &d.OrgID, &d.MemberID, &d.Month, &d.Year, &d.Amount, &d.Status, &d.CreatedAt, &d.UpdatedAt)
}

func (r *duesRepository) GetByID(ctx context.Context, id int32) (*domain.Dues, error) {
	d := &domain.Dues{}
	err := scanDues(r.db.QueryRowContext(ctx, `SELECT `+duesColumns+` FROM dues WHERE id = $1`, id), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *duesRepository) GetForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Dues, error) {
	d := &domain.Dues{}
	query := `SELECT ` + duesColumns + ` FROM dues WHERE member_id = $1 AND month = $2 AND year = $3`
	err := scanDues(r.db.QueryRowContext(ctx, query, memberID, month, year), d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Ensure creates the record if absent. A concurrent creator winning the
// unique (member_id, month, year) race is treated as the record existing:
// the insert becomes a no-op and the existing row is returned unchanged.
func (r *duesRepository) Ensure(ctx context.Context, d *domain.Dues) (bool, error) {
	logger.EnterMethod("duesRepository.Ensure", "memberID", d.MemberID, "month", d.Month, "year", d.Year)

	now := time.Now()
	query := `INSERT INTO dues (org_id, member_id, month, year, amount, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          ON CONFLICT (member_id, month, year) DO NOTHING
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, d.OrgID, d.MemberID, d.Month, d.Year, d.Amount, domain.DuesStatusPending, now).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err == nil {
		d.Status = domain.DuesStatusPending
		logger.ExitMethod("duesRepository.Ensure", "duesID", d.ID, "created", true)
		return true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("duesRepository.Ensure", err, "memberID", d.MemberID)
		return false, err
	}

	existing, err := r.GetForPeriod(ctx, d.MemberID, d.Month, d.Year)
	if err != nil {
		logger.ExitMethodWithError("duesRepository.Ensure", err, "memberID", d.MemberID)
		return false, err
	}
	*d = *existing
	logger.ExitMethod("duesRepository.Ensure", "duesID", d.ID, "created", false)
	return false, nil
}

func (r *duesRepository) Upsert(ctx context.Context, d *domain.Dues) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertDuesTx(ctx, tx, d); err != nil {
		return err
	}
	return tx.Commit()
}

// upsertDuesTx overwrites the amount for the record's period and recomputes
// the cached status, since an amount change can move a PAID record back to
// PARTIAL or the reverse.
func upsertDuesTx(ctx context.Context, tx *sql.Tx, d *domain.Dues) error {
	now := time.Now()
	query := `INSERT INTO dues (org_id, member_id, month, year, amount, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          ON CONFLICT (member_id, month, year)
	          DO UPDATE SET amount = EXCLUDED.amount, updated_at = EXCLUDED.updated_at
	          RETURNING id, created_at, updated_at`
	err := tx.QueryRowContext(ctx, query, d.OrgID, d.MemberID, d.Month, d.Year, d.Amount, domain.DuesStatusPending, now).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.QueryRowContext(ctx, recomputeStatusQuery, d.ID, now).Scan(&d.Status)
}

func (r *duesRepository) UpsertForMembers(ctx context.Context, orgID int32, month, year int, amount int64, memberIDs []int32) (int, error) {
	logger.EnterMethod("duesRepository.UpsertForMembers", "orgID", orgID, "month", month, "year", year, "members", len(memberIDs))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	count := 0
	for _, memberID := range memberIDs {
		d := &domain.Dues{OrgID: orgID, MemberID: memberID, Month: month, Year: year, Amount: amount}
		if err := upsertDuesTx(ctx, tx, d); err != nil {
			logger.ExitMethodWithError("duesRepository.UpsertForMembers", err, "memberID", memberID)
			return 0, err
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.ExitMethod("duesRepository.UpsertForMembers", "count", count)
	return count, nil
}

const duesBalanceColumns = `d.id, d.org_id, d.member_id, d.month, d.year, d.amount, d.status, d.created_at, d.updated_at, COALESCE(SUM(p.amount), 0)`

func (r *duesRepository) listBalances(ctx context.Context, query string, args ...interface{}) ([]domain.DuesBalance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []domain.DuesBalance
	for rows.Next() {
		var b domain.DuesBalance
		d := &b.Dues
		if err := rows.Scan(&d.ID, &d.OrgID, &d.MemberID, &d.Month, &d.Year, &d.Amount, &d.Status, &d.CreatedAt, &d.UpdatedAt, &b.TotalPaid); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}

func (r *duesRepository) ListOutstandingByMember(ctx context.Context, memberID int32) ([]domain.DuesBalance, error) {
	query := `SELECT ` + duesBalanceColumns + `
	          FROM dues d LEFT JOIN payments p ON p.dues_id = d.id
	          WHERE d.member_id = $1 AND d.status = ANY($2)
	          GROUP BY d.id
	          ORDER BY d.year ASC, d.month ASC`
	statuses := pq.Array([]string{string(domain.DuesStatusPending), string(domain.DuesStatusPartial)})
	return r.listBalances(ctx, query, memberID, statuses)
}

func (r *duesRepository) ListByOrgPeriod(ctx context.Context, orgID int32, month, year int) ([]domain.DuesBalance, error) {
	query := `SELECT ` + duesBalanceColumns + `
	          FROM dues d LEFT JOIN payments p ON p.dues_id = d.id
	          WHERE d.org_id = $1 AND d.month = $2 AND d.year = $3
	          GROUP BY d.id
	          ORDER BY d.member_id ASC`
	return r.listBalances(ctx, query, orgID, month, year)
}

func (r *duesRepository) ListByOrgYear(ctx context.Context, orgID int32, year int) ([]domain.DuesBalance, error) {
	query := `SELECT ` + duesBalanceColumns + `
	          FROM dues d LEFT JOIN payments p ON p.dues_id = d.id
	          WHERE d.org_id = $1 AND d.year = $2
	          GROUP BY d.id
	          ORDER BY d.member_id ASC, d.month ASC`
	return r.listBalances(ctx, query, orgID, year)
}
