package repository

import (
	"context"

	"dueshub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Memberships
	AddMembership(ctx context.Context, m *domain.Membership) error
	GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error)
	ListMembershipsByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error)
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id int32) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	// CreateBatch inserts all members in one transaction; on failure none are kept.
	CreateBatch(ctx context.Context, members []*domain.Member) error
	GetByID(ctx context.Context, id int32) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	// Delete removes the member; dues and payments cascade in the store.
	Delete(ctx context.Context, id int32) error
	// ListByOrg returns members ordered by full name ascending.
	ListByOrg(ctx context.Context, orgID int32, activeOnly bool) ([]domain.Member, error)
}

type DuesRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Dues, error)
	GetForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Dues, error)
	// Ensure creates the dues record if absent and reports whether it did;
	// an existing record is returned unchanged (amount is not overwritten).
	Ensure(ctx context.Context, d *domain.Dues) (created bool, err error)
	// Upsert creates or overwrites the record's amount for its period and
	// recomputes the cached status from payments, in one transaction.
	Upsert(ctx context.Context, d *domain.Dues) error
	// UpsertForMembers applies Upsert semantics to every given member in a
	// single all-or-nothing transaction and returns the row count touched.
	UpsertForMembers(ctx context.Context, orgID int32, month, year int, amount int64, memberIDs []int32) (int, error)

	// ListOutstandingByMember returns PENDING/PARTIAL dues with payment
	// totals, ordered by (year asc, month asc).
	ListOutstandingByMember(ctx context.Context, memberID int32) ([]domain.DuesBalance, error)
	ListByOrgPeriod(ctx context.Context, orgID int32, month, year int) ([]domain.DuesBalance, error)
	ListByOrgYear(ctx context.Context, orgID int32, year int) ([]domain.DuesBalance, error)
}

type PaymentRepository interface {
	// Record appends the payment and updates the owning dues record's cached
	// status in one transaction; the dues row is locked for the duration.
	// Returns the dues record as of after the payment.
	Record(ctx context.Context, p *domain.Payment) (*domain.Dues, int64, error)
	ListByDues(ctx context.Context, duesID int32) ([]domain.Payment, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListByOrg(ctx context.Context, orgID int32, txType string, category string, page, pageSize int32) ([]domain.Transaction, int32, error)
	Summary(ctx context.Context, orgID int32, month, year int) (*domain.TransactionSummary, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
