package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

func newPaymentServiceForTest(paymentRepo repository.PaymentRepository, duesRepo repository.DuesRepository, memberRepo *MockMemberRepo, orgRepo *MockOrgRepo, userRepo *MockUserRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService) PaymentService {
	return NewPaymentService(paymentRepo, duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)
}

func TestPaymentService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsReconciledView", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		duesRepo := new(MockDuesRepo)
		memberRepo := new(MockMemberRepo)
		orgRepo := new(MockOrgRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newPaymentServiceForTest(paymentRepo, duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

		dues := &domain.Dues{ID: 10, OrgID: 1, MemberID: 2, Month: 3, Year: 2025, Amount: 50000, Status: domain.DuesStatusPending}
		duesRepo.On("GetByID", ctx, int32(10)).Return(dues, nil)
		userRepo.On("GetMembership", ctx, int32(7), int32(1)).Return(treasurerMembership(7, 1), nil)

		updated := &domain.Dues{ID: 10, OrgID: 1, MemberID: 2, Month: 3, Year: 2025, Amount: 50000, Status: domain.DuesStatusPartial}
		paymentRepo.On("Record", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.DuesID == 10 && p.Amount == 20000 && p.Method == "CASH" &&
				p.Reference != "" && p.CreatedBy == 7
		})).Return(updated, int64(20000), nil)

		memberRepo.On("GetByID", ctx, int32(2)).Return(&domain.Member{ID: 2, OrgID: 1, FullName: "Aisha", Email: "aisha@example.com"}, nil)
		orgRepo.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Warga RT 05"}, nil)
		emailSvc.On("SendPaymentReceipt", ctx, "aisha@example.com", "Aisha", "Warga RT 05", int64(20000), "CASH", mock.AnythingOfType("string")).Return(nil)
		userRepo.On("ListMembershipsByOrg", ctx, int32(1)).Return([]domain.Membership{}, nil)

		view, err := svc.RecordPayment(ctx, 7, 10, 20000, "CASH", "")
		assert.NoError(t, err)
		assert.Equal(t, domain.DuesStatusPartial, view.Status)
		assert.Equal(t, int64(30000), view.RemainingAmount)
		assert.Equal(t, int64(20000), view.TotalPaid)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		duesRepo := new(MockDuesRepo)
		svc := newPaymentServiceForTest(paymentRepo, duesRepo, new(MockMemberRepo), new(MockOrgRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		var vErr *domain.ValidationError
		_, err := svc.RecordPayment(ctx, 7, 10, 0, "CASH", "")
		assert.ErrorAs(t, err, &vErr)

		_, err = svc.RecordPayment(ctx, 7, 10, -100, "CASH", "")
		assert.ErrorAs(t, err, &vErr)

		_, err = svc.RecordPayment(ctx, 7, 10, 100, "", "")
		assert.ErrorAs(t, err, &vErr)

		paymentRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("UnknownDuesIsNotFound", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		duesRepo := new(MockDuesRepo)
		svc := newPaymentServiceForTest(paymentRepo, duesRepo, new(MockMemberRepo), new(MockOrgRepo), new(MockUserRepo), new(MockNotificationRepo), new(MockEmailService))

		duesRepo.On("GetByID", ctx, int32(999)).Return(nil, domain.ErrNotFound)

		_, err := svc.RecordPayment(ctx, 7, 999, 100, "CASH", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DeniesPlainMember", func(t *testing.T) {
		paymentRepo := new(MockPaymentRepo)
		duesRepo := new(MockDuesRepo)
		userRepo := new(MockUserRepo)
		svc := newPaymentServiceForTest(paymentRepo, duesRepo, new(MockMemberRepo), new(MockOrgRepo), userRepo, new(MockNotificationRepo), new(MockEmailService))

		duesRepo.On("GetByID", ctx, int32(10)).Return(&domain.Dues{ID: 10, OrgID: 1, Amount: 50000}, nil)
		userRepo.On("GetMembership", ctx, int32(8), int32(1)).Return(plainMembership(8, 1), nil)

		_, err := svc.RecordPayment(ctx, 8, 10, 100, "CASH", "")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		paymentRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})
}

// lockedPaymentStore simulates the store's row-locked payment path: it
// serializes Record calls the way SELECT ... FOR UPDATE does.
type lockedPaymentStore struct {
	mu       sync.Mutex
	dues     domain.Dues
	payments []domain.Payment
	nextID   int32
}

func (s *lockedPaymentStore) GetByID(ctx context.Context, id int32) (*domain.Dues, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.dues.ID {
		return nil, domain.ErrNotFound
	}
	d := s.dues
	return &d, nil
}

func (s *lockedPaymentStore) Record(ctx context.Context, p *domain.Payment) (*domain.Dues, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.DuesID != s.dues.ID {
		return nil, 0, domain.ErrNotFound
	}
	s.nextID++
	p.ID = s.nextID
	p.MemberID = s.dues.MemberID
	s.payments = append(s.payments, *p)

	total := domain.SumPayments(s.payments)
	s.dues.Status = domain.DeriveStatus(s.dues.Amount, total)
	d := s.dues
	return &d, total, nil
}

func (s *lockedPaymentStore) ListByDues(ctx context.Context, duesID int32) ([]domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Payment(nil), s.payments...), nil
}

// Unused DuesRepository methods for the concurrency fixture.
func (s *lockedPaymentStore) GetForPeriod(ctx context.Context, memberID int32, month, year int) (*domain.Dues, error) {
	return nil, domain.ErrNotFound
}
func (s *lockedPaymentStore) Ensure(ctx context.Context, d *domain.Dues) (bool, error) {
	return false, nil
}
func (s *lockedPaymentStore) Upsert(ctx context.Context, d *domain.Dues) error { return nil }
func (s *lockedPaymentStore) UpsertForMembers(ctx context.Context, orgID int32, month, year int, amount int64, memberIDs []int32) (int, error) {
	return 0, nil
}
func (s *lockedPaymentStore) ListOutstandingByMember(ctx context.Context, memberID int32) ([]domain.DuesBalance, error) {
	return nil, nil
}
func (s *lockedPaymentStore) ListByOrgPeriod(ctx context.Context, orgID int32, month, year int) ([]domain.DuesBalance, error) {
	return nil, nil
}
func (s *lockedPaymentStore) ListByOrgYear(ctx context.Context, orgID int32, year int) ([]domain.DuesBalance, error) {
	return nil, nil
}

func TestPaymentService_ConcurrentPartialPayments(t *testing.T) {
	ctx := context.Background()

	store := &lockedPaymentStore{
		dues: domain.Dues{ID: 10, OrgID: 1, MemberID: 2, Month: 3, Year: 2025, Amount: 50000, Status: domain.DuesStatusPending},
	}

	memberRepo := new(MockMemberRepo)
	orgRepo := new(MockOrgRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)

	userRepo.On("GetMembership", mock.Anything, int32(7), int32(1)).Return(treasurerMembership(7, 1), nil)
	memberRepo.On("GetByID", mock.Anything, int32(2)).Return(&domain.Member{ID: 2, OrgID: 1, FullName: "Aisha"}, nil)
	orgRepo.On("GetByID", mock.Anything, int32(1)).Return(&domain.Organization{ID: 1, Name: "Warga RT 05"}, nil)
	userRepo.On("ListMembershipsByOrg", mock.Anything, int32(1)).Return([]domain.Membership{}, nil)

	svc := newPaymentServiceForTest(store, store, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

	// Two partial payments race against the same record; together they
	// cover it exactly.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, amount := range []int64{30000, 20000} {
		wg.Add(1)
		go func(i int, amount int64) {
			defer wg.Done()
			_, errs[i] = svc.RecordPayment(ctx, 7, 10, amount, "TRANSFER", "")
		}(i, amount)
	}
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])

	// Neither payment is lost and the final status is PAID.
	payments, err := store.ListByDues(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, payments, 2)
	assert.Equal(t, int64(50000), domain.SumPayments(payments))

	final, err := store.GetByID(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, domain.DuesStatusPaid, final.Status)
}
