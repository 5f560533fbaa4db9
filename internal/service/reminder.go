package service

import (
	"context"
	"fmt"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type reminderService struct {
	accessGate
	duesRepo         repository.DuesRepository
	memberRepo       repository.MemberRepository
	orgRepo          repository.OrganizationRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
}

func NewReminderService(
	duesRepo repository.DuesRepository,
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
) ReminderService {
	return &reminderService{
		accessGate:       accessGate{userRepo: userRepo},
		duesRepo:         duesRepo,
		memberRepo:       memberRepo,
		orgRepo:          orgRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
	}
}

func (s *reminderService) DuesNeedingReminder(ctx context.Context, actorID, orgID int32, month, year int) ([]domain.ReminderTarget, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}

	balances, err := s.duesRepo.ListByOrgPeriod(ctx, orgID, month, year)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListByOrg(ctx, orgID, true)
	if err != nil {
		return nil, err
	}
	byID := make(map[int32]domain.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	var targets []domain.ReminderTarget
	for i := range balances {
		v := balances[i].View()
		if v.RemainingAmount <= 0 {
			continue
		}
		member, ok := byID[balances[i].Dues.MemberID]
		if !ok {
			// Deactivated or removed since the dues record was created.
			continue
		}
		targets = append(targets, domain.ReminderTarget{
			Member:          member,
			DuesID:          v.DuesID,
			Month:           v.Month,
			Year:            v.Year,
			RemainingAmount: v.RemainingAmount,
		})
	}
	return targets, nil
}

// SendMonthlyReminders attempts one delivery per owing member. A failure for
// one recipient is logged and must not abort the rest of the loop; the run
// reports how many sends succeeded.
func (s *reminderService) SendMonthlyReminders(ctx context.Context, actorID, orgID int32, month, year int) (*domain.ReminderRun, error) {
	logger.EnterMethod("reminderService.SendMonthlyReminders", "orgID", orgID, "month", month, "year", year)

	if _, err := s.requireTreasurer(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	targets, err := s.DuesNeedingReminder(ctx, SystemActor, orgID, month, year)
	if err != nil {
		logger.ExitMethodWithError("reminderService.SendMonthlyReminders", err, "orgID", orgID)
		return nil, err
	}

	run := &domain.ReminderRun{Month: month, Year: year}
	for _, t := range targets {
		run.Attempted++

		if t.Member.Email == "" {
			logger.Warn("Skipping dues reminder, member has no email",
				"member_id", t.Member.ID, "dues_id", t.DuesID)
			continue
		}

		err := s.emailSvc.SendDuesReminder(ctx, t.Member.Email, t.Member.FullName, org.Name, t.Month, t.Year, t.RemainingAmount)
		if err != nil {
			logger.Error("Failed to send dues reminder",
				"member_id", t.Member.ID,
				"dues_id", t.DuesID,
				"email", t.Member.Email,
				"error", err)
			continue
		}

		run.Sent++
		logger.Debug("Sent dues reminder", "member_id", t.Member.ID, "dues_id", t.DuesID)
	}

	s.notifyRunFinished(ctx, orgID, run)

	logger.ExitMethod("reminderService.SendMonthlyReminders", "attempted", run.Attempted, "sent", run.Sent)
	return run, nil
}

// notifyRunFinished records an in-app summary for the org's admins and
// treasurers. Best-effort.
func (s *reminderService) notifyRunFinished(ctx context.Context, orgID int32, run *domain.ReminderRun) {
	memberships, err := s.userRepo.ListMembershipsByOrg(ctx, orgID)
	if err != nil {
		return
	}
	for _, m := range memberships {
		if !m.CanManageDues() {
			continue
		}
		notification := &domain.Notification{
			UserID:  m.UserID,
			OrgID:   orgID,
			Title:   "Dues Reminders Sent",
			Message: fmt.Sprintf("Sent %d of %d dues reminders for %d/%d", run.Sent, run.Attempted, run.Month, run.Year),
			Attributes: map[string]string{
				"topic":     "dues_reminder_run",
				"month":     fmt.Sprintf("%d", run.Month),
				"year":      fmt.Sprintf("%d", run.Year),
				"sent":      fmt.Sprintf("%d", run.Sent),
				"attempted": fmt.Sprintf("%d", run.Attempted),
			},
		}
		_ = s.notificationRepo.Create(ctx, notification)
	}
}
