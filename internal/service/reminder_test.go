package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dueshub-backend/internal/domain"
)

func newReminderServiceForTest(duesRepo *MockDuesRepo, memberRepo *MockMemberRepo, orgRepo *MockOrgRepo, userRepo *MockUserRepo, noteRepo *MockNotificationRepo, emailSvc *MockEmailService) ReminderService {
	return NewReminderService(duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)
}

func TestReminderService_DuesNeedingReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("JoinsOwingDuesWithActiveMembers", func(t *testing.T) {
		duesRepo := new(MockDuesRepo)
		memberRepo := new(MockMemberRepo)
		orgRepo := new(MockOrgRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newReminderServiceForTest(duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

		userRepo.On("GetMembership", ctx, int32(8), int32(1)).Return(plainMembership(8, 1), nil)
		duesRepo.On("ListByOrgPeriod", ctx, int32(1), 3, 2025).Return([]domain.DuesBalance{
			{Dues: domain.Dues{ID: 10, MemberID: 2, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 50000},
			{Dues: domain.Dues{ID: 11, MemberID: 3, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 20000},
			// Member 9 was deactivated after the record was created.
			{Dues: domain.Dues{ID: 12, MemberID: 9, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 0},
		}, nil)
		memberRepo.On("ListByOrg", ctx, int32(1), true).Return([]domain.Member{
			{ID: 2, FullName: "Aisha", Email: "aisha@example.com"},
			{ID: 3, FullName: "Budi", Email: "budi@example.com"},
		}, nil)

		targets, err := svc.DuesNeedingReminder(ctx, 8, 1, 3, 2025)
		assert.NoError(t, err)
		assert.Len(t, targets, 1)
		assert.Equal(t, int32(3), targets[0].Member.ID)
		assert.Equal(t, int64(30000), targets[0].RemainingAmount)
	})
}

func TestReminderService_SendMonthlyReminders(t *testing.T) {
	ctx := context.Background()

	t.Run("FailedSendDoesNotAbortTheRun", func(t *testing.T) {
		duesRepo := new(MockDuesRepo)
		memberRepo := new(MockMemberRepo)
		orgRepo := new(MockOrgRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newReminderServiceForTest(duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

		userRepo.On("GetMembership", ctx, int32(7), int32(1)).Return(treasurerMembership(7, 1), nil)
		orgRepo.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Warga RT 05"}, nil)
		duesRepo.On("ListByOrgPeriod", ctx, int32(1), 3, 2025).Return([]domain.DuesBalance{
			{Dues: domain.Dues{ID: 10, MemberID: 2, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 0},
			{Dues: domain.Dues{ID: 11, MemberID: 3, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 0},
			{Dues: domain.Dues{ID: 12, MemberID: 4, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 0},
		}, nil)
		memberRepo.On("ListByOrg", ctx, int32(1), true).Return([]domain.Member{
			{ID: 2, FullName: "Aisha", Email: "aisha@example.com"},
			{ID: 3, FullName: "Budi", Email: "budi@example.com"},
			{ID: 4, FullName: "Citra", Email: "citra@example.com"},
		}, nil)

		emailSvc.On("SendDuesReminder", ctx, "aisha@example.com", "Aisha", "Warga RT 05", 3, 2025, int64(50000)).Return(nil)
		emailSvc.On("SendDuesReminder", ctx, "budi@example.com", "Budi", "Warga RT 05", 3, 2025, int64(50000)).Return(errors.New("smtp refused"))
		emailSvc.On("SendDuesReminder", ctx, "citra@example.com", "Citra", "Warga RT 05", 3, 2025, int64(50000)).Return(nil)

		userRepo.On("ListMembershipsByOrg", ctx, int32(1)).Return([]domain.Membership{*treasurerMembership(7, 1)}, nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		run, err := svc.SendMonthlyReminders(ctx, 7, 1, 3, 2025)
		assert.NoError(t, err)
		assert.Equal(t, 3, run.Attempted)
		assert.Equal(t, 2, run.Sent)
		emailSvc.AssertNumberOfCalls(t, "SendDuesReminder", 3)
	})

	t.Run("MemberWithoutEmailIsSkipped", func(t *testing.T) {
		duesRepo := new(MockDuesRepo)
		memberRepo := new(MockMemberRepo)
		orgRepo := new(MockOrgRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newReminderServiceForTest(duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

		userRepo.On("GetMembership", ctx, int32(7), int32(1)).Return(treasurerMembership(7, 1), nil)
		orgRepo.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Warga RT 05"}, nil)
		duesRepo.On("ListByOrgPeriod", ctx, int32(1), 3, 2025).Return([]domain.DuesBalance{
			{Dues: domain.Dues{ID: 10, MemberID: 2, Month: 3, Year: 2025, Amount: 50000}, TotalPaid: 0},
		}, nil)
		memberRepo.On("ListByOrg", ctx, int32(1), true).Return([]domain.Member{
			{ID: 2, FullName: "Aisha"},
		}, nil)
		userRepo.On("ListMembershipsByOrg", ctx, int32(1)).Return([]domain.Membership{}, nil)

		run, err := svc.SendMonthlyReminders(ctx, 7, 1, 3, 2025)
		assert.NoError(t, err)
		assert.Equal(t, 1, run.Attempted)
		assert.Equal(t, 0, run.Sent)
		emailSvc.AssertNotCalled(t, "SendDuesReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SystemActorBypassesMembershipCheck", func(t *testing.T) {
		duesRepo := new(MockDuesRepo)
		memberRepo := new(MockMemberRepo)
		orgRepo := new(MockOrgRepo)
		userRepo := new(MockUserRepo)
		noteRepo := new(MockNotificationRepo)
		emailSvc := new(MockEmailService)
		svc := newReminderServiceForTest(duesRepo, memberRepo, orgRepo, userRepo, noteRepo, emailSvc)

		orgRepo.On("GetByID", ctx, int32(1)).Return(&domain.Organization{ID: 1, Name: "Warga RT 05"}, nil)
		duesRepo.On("ListByOrgPeriod", ctx, int32(1), 3, 2025).Return([]domain.DuesBalance{}, nil)
		memberRepo.On("ListByOrg", ctx, int32(1), true).Return([]domain.Member{}, nil)
		userRepo.On("ListMembershipsByOrg", ctx, int32(1)).Return([]domain.Membership{}, nil)

		run, err := svc.SendMonthlyReminders(ctx, SystemActor, 1, 3, 2025)
		assert.NoError(t, err)
		assert.Equal(t, 0, run.Attempted)
		userRepo.AssertNotCalled(t, "GetMembership", mock.Anything, mock.Anything, mock.Anything)
	})
}
