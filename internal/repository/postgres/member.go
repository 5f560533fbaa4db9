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

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	query := `INSERT INTO members (org_id, full_name, email, phone, is_active, joined_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, joined_at`
	if m.JoinedAt.IsZero() {
		m.JoinedAt = time.Now()
	}
	return r.db.QueryRowContext(ctx, query, m.OrgID, m.FullName, m.Email, m.Phone, m.IsActive, m.JoinedAt).Scan(&m.ID, &m.JoinedAt)
}

func (r *memberRepository) CreateBatch(ctx context.Context, members []*domain.Member) error {
	logger.EnterMethod("memberRepository.CreateBatch", "count", len(members))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO members (org_id, full_name, email, phone, is_active, joined_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, joined_at`
	now := time.Now()
	for _, m := range members {
		if m.JoinedAt.IsZero() {
			m.JoinedAt = now
		}
		if err := tx.QueryRowContext(ctx, query, m.OrgID, m.FullName, m.Email, m.Phone, m.IsActive, m.JoinedAt).Scan(&m.ID, &m.JoinedAt); err != nil {
			logger.ExitMethodWithError("memberRepository.CreateBatch", err, "fullName", m.FullName)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	logger.ExitMethod("memberRepository.CreateBatch", "count", len(members))
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, org_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), is_active, joined_at
	          FROM members WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.OrgID, &m.FullName, &m.Email, &m.Phone, &m.IsActive, &m.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	query := `UPDATE members SET full_name=$1, email=$2, phone=$3, is_active=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, m.FullName, m.Email, m.Phone, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the member; dues and payments go with it through
// ON DELETE CASCADE constraints on the store side.
func (r *memberRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *memberRepository) ListByOrg(ctx context.Context, orgID int32, activeOnly bool) ([]domain.Member, error) {
	query := `SELECT id, org_id, full_name, COALESCE(email, ''), COALESCE(phone, ''), is_active, joined_at
	          FROM members WHERE org_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY full_name ASC`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.OrgID, &m.FullName, &m.Email, &m.Phone, &m.IsActive, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
