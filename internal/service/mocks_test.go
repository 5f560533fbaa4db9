package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dueshub-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) AddMembership(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockUserRepo) GetMembership(ctx context.Context, userID, orgID int32) (*domain.Membership, error) {
	args := m.Called(ctx, userID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}
func (m *MockUserRepo) ListMembershipsByOrg(ctx context.Context, orgID int32) ([]domain.Membership, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

// MockOrgRepo
type MockOrgRepo struct {
	mock.Mock
}

func (m *MockOrgRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrgRepo) GetByID(ctx context.Context, id int32) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrgRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockMemberRepo
type MockMemberRepo struct {
	mock.Mock
}

func (m *MockMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) CreateBatch(ctx context.Context, members []*domain.Member) error {
	args := m.Called(ctx, members)
	return args.Error(0)
}
func (m *MockMemberRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}
func (m *MockMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}
func (m *MockMemberRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMemberRepo) ListByOrg(ctx context.Context, orgID int32, activeOnly bool) ([]domain.Member, error) {
	args := m.Called(ctx, orgID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Member), args.Error(1)
}

// MockDuesRepo
type MockDuesRepo struct {
	mock.Mock
}

func (m *MockDuesRepo) GetByID(ctx context.Context, id int32) (*domain.Dues, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dues), args.Error(1)
}
func (m *MockDuesRepo) GetForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Dues, error) {
	args := m.Called(ctx, memberID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dues), args.Error(1)
}
func (m *MockDuesRepo) Ensure(ctx context.Context, d *domain.Dues) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}
func (m *MockDuesRepo) Upsert(ctx context.Context, d *domain.Dues) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDuesRepo) UpsertForMembers(ctx context.Context, orgID int32, month, year int, amount int64, memberIDs []int32) (int, error) {
	args := m.Called(ctx, orgID, month, year, amount, memberIDs)
	return args.Int(0), args.Error(1)
}
func (m *MockDuesRepo) ListOutstandingByMember(ctx context.Context, memberID int32) ([]domain.DuesBalance, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuesBalance), args.Error(1)
}
func (m *MockDuesRepo) ListByOrgPeriod(ctx context.Context, orgID int32, month, year int) ([]domain.DuesBalance, error) {
	args := m.Called(ctx, orgID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuesBalance), args.Error(1)
}
func (m *MockDuesRepo) ListByOrgYear(ctx context.Context, orgID int32, year int) ([]domain.DuesBalance, error) {
	args := m.Called(ctx, orgID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DuesBalance), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Record(ctx context.Context, p *domain.Payment) (*domain.Dues, int64, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*domain.Dues), args.Get(1).(int64), args.Error(2)
}
func (m *MockPaymentRepo) ListByDues(ctx context.Context, duesID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, duesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendDuesReminder(ctx context.Context, email, name, orgName string, month, year int, remaining int64) error {
	args := m.Called(ctx, email, name, orgName, month, year, remaining)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReceipt(ctx context.Context, email, name, orgName string, amount int64, method, reference string) error {
	args := m.Called(ctx, email, name, orgName, amount, method, reference)
	return args.Error(0)
}

func treasurerMembership(userID, orgID int32) *domain.Membership {
	return &domain.Membership{
		UserID: userID,
		OrgID:  orgID,
		Status: domain.MembershipStatusActive,
		Role:   domain.MembershipRoleTreasurer,
	}
}

func plainMembership(userID, orgID int32) *domain.Membership {
	return &domain.Membership{
		UserID: userID,
		OrgID:  orgID,
		Status: domain.MembershipStatusActive,
		Role:   domain.MembershipRoleMember,
	}
}
