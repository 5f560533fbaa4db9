package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, phone_number, name, created_on)
	          VALUES ($1, $2, $3, $4) RETURNING id`
	now := time.Now().Format("2006-01-02")
	u.CreatedOn = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.PhoneNumber, u.Name, u.CreatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, COALESCE(phone_number, ''), name, created_on FROM users WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.Name, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, COALESCE(phone_number, ''), name, created_on FROM users WHERE LOWER(email) = LOWER($1)`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PhoneNumber, &u.Name, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) AddMembership(ctx context.Context, m *domain.Membership) error {
	query := `INSERT INTO memberships (user_id, org_id, joined_on, status, role)
	          VALUES ($1, $2, $3, $4, $5)`
	now := time.Now().Format("2006-01-02")
	m.JoinedOn = now
	_, err := r.db.ExecContext(ctx, query, m.UserID, m.OrgID, m.JoinedOn, m.Status, m.Role)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
		return domain.ErrConflict
	}
	return err
}

func (r *userRepository) GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	m := &domain.Membership{}
	query := `SELECT user_id, org_id, joined_on, status, role FROM memberships WHERE user_id = $1 AND org_id = $2`
	var joinedOn time.Time
	err := r.db.QueryRowContext(ctx, query, userID, orgID).Scan(&m.UserID, &m.OrgID, &joinedOn, &m.Status, &m.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.JoinedOn = joinedOn.Format("2006-01-02")
	return m, nil
}

func (r *userRepository) ListMembershipsByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error) {
	query := `SELECT user_id, org_id, joined_on, status, role FROM memberships WHERE org_id = $1`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		var joinedOn time.Time
		if err := rows.Scan(&m.UserID, &m.OrgID, &joinedOn, &m.Status, &m.Role); err != nil {
			return nil, err
		}
		m.JoinedOn = joinedOn.Format("2006-01-02")
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}
