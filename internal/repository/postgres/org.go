package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	query := `INSERT INTO orgs (name, description, treasurer_email, treasurer_phone, default_dues_amount, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, o.Name, o.Description, o.TreasurerEmail, o.TreasurerPhone, o.DefaultDuesAmount, time.Now()).Scan(&o.ID)
}

func (r *organizationRepository) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, COALESCE(description, ''), COALESCE(treasurer_email, ''), COALESCE(treasurer_phone, ''), default_dues_amount, created_on
	          FROM orgs WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.Description, &o.TreasurerEmail, &o.TreasurerPhone, &o.DefaultDuesAmount, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.CreatedOn = createdOn.Format("2006-01-02")
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT id, name, COALESCE(description, ''), COALESCE(treasurer_email, ''), COALESCE(treasurer_phone, ''), default_dues_amount, created_on FROM orgs ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		var createdOn time.Time
		if err := rows.Scan(&o.ID, &o.Name, &o.Description, &o.TreasurerEmail, &o.TreasurerPhone, &o.DefaultDuesAmount, &createdOn); err != nil {
			return nil, err
		}
		o.CreatedOn = createdOn.Format("2006-01-02")
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE orgs SET name=$1, description=$2, treasurer_email=$3, treasurer_phone=$4, default_dues_amount=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, o.Name, o.Description, o.TreasurerEmail, o.TreasurerPhone, o.DefaultDuesAmount, o.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
