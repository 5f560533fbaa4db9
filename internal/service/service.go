package service

import (
	"context"

	"dueshub-backend/internal/domain"
)

// SystemActor marks operations triggered by scheduled jobs rather than an
// authenticated caller; the membership gate lets it through.
const SystemActor int32 = 0

type DuesService interface {
	// EnsureDues returns the existing dues record for the period or creates
	// it with status PENDING. An existing record's amount is never changed.
	EnsureDues(ctx context.Context, actorID, orgID, memberID int32, month, year int, amount int64) (*domain.Dues, error)
	// SetDuesForPeriod administratively upserts the amount for one member,
	// or for every active member of the organization when memberID is nil
	// (all-or-nothing batch). Returns the number of records created or updated.
	SetDuesForPeriod(ctx context.Context, actorID, orgID int32, month, year int, amount int64, memberID *int32) (int, error)

	OutstandingDuesForMember(ctx context.Context, actorID, memberID int32) ([]domain.DuesStatusView, error)
	UnpaidMembersForPeriod(ctx context.Context, actorID, orgID int32, month, year int) ([]domain.MemberDuesStatus, error)
	YearlyStatusMatrix(ctx context.Context, actorID, orgID int32, year int) ([]domain.MemberYearStatus, error)
}

type PaymentService interface {
	RecordPayment(ctx context.Context, actorID, duesID int32, amount int64, method, note string) (*domain.DuesStatusView, error)
	ListPayments(ctx context.Context, actorID, duesID int32) ([]domain.Payment, error)
}

type ReminderService interface {
	// DuesNeedingReminder selects PENDING/PARTIAL dues for the period joined
	// with member contact info. It sends nothing itself.
	DuesNeedingReminder(ctx context.Context, actorID, orgID int32, month, year int) ([]domain.ReminderTarget, error)
	// SendMonthlyReminders delivers one reminder per owing member,
	// best-effort: a failed send is logged and skipped, never fatal.
	SendMonthlyReminders(ctx context.Context, actorID, orgID int32, month, year int) (*domain.ReminderRun, error)
}

type MemberService interface {
	CreateMember(ctx context.Context, actorID int32, member *domain.Member) error
	UpdateMember(ctx context.Context, actorID int32, member *domain.Member) error
	DeactivateMember(ctx context.Context, actorID, memberID int32) error
	DeleteMember(ctx context.Context, actorID, memberID int32) error
	ListMembers(ctx context.Context, actorID, orgID int32, activeOnly bool) ([]domain.Member, error)
	// ImportMembersCSV bulk-creates members from CSV rows
	// (full_name,email,phone). The whole import is one transaction.
	ImportMembersCSV(ctx context.Context, actorID, orgID int32, csvData []byte) (int, error)
}

type OrganizationService interface {
	CreateOrganization(ctx context.Context, creatorID int32, org *domain.Organization) error
	GetOrganization(ctx context.Context, actorID, orgID int32) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, actorID int32, org *domain.Organization) error
}

type TransactionService interface {
	RecordTransaction(ctx context.Context, actorID int32, tx *domain.Transaction) error
	ListTransactions(ctx context.Context, actorID, orgID int32, txType, category string, page, pageSize int32) ([]domain.Transaction, int32, error)
	MonthlySummary(ctx context.Context, actorID, orgID int32, month, year int) (*domain.TransactionSummary, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendDuesReminder(ctx context.Context, email, name, orgName string, month, year int, remaining int64) error
	SendPaymentReceipt(ctx context.Context, email, name, orgName string, amount int64, method, reference string) error
}
