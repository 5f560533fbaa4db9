package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type paymentService struct {
	accessGate
	paymentRepo      repository.PaymentRepository
	duesRepo         repository.DuesRepository
	memberRepo       repository.MemberRepository
	orgRepo          repository.OrganizationRepository
	notificationRepo repository.NotificationRepository
	emailSvc         EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	duesRepo repository.DuesRepository,
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		accessGate:       accessGate{userRepo: userRepo},
		paymentRepo:      paymentRepo,
		duesRepo:         duesRepo,
		memberRepo:       memberRepo,
		orgRepo:          orgRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, actorID, duesID int32, amount int64, method, note string) (*domain.DuesStatusView, error) {
	logger.EnterMethod("paymentService.RecordPayment", "duesID", duesID, "amount", amount, "method", method)

	// Validation and authorization happen before any write.
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, domain.NewValidationError("method", "is required")
	}

	dues, err := s.duesRepo.GetByID(ctx, duesID)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "duesID", duesID)
		return nil, err
	}
	if _, err := s.requireTreasurer(ctx, actorID, dues.OrgID); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		DuesID:    duesID,
		Amount:    amount,
		Method:    method,
		Note:      note,
		Reference: uuid.New().String(),
		CreatedBy: actorID,
	}

	updated, totalPaid, err := s.paymentRepo.Record(ctx, p)
	if err != nil {
		logger.ExitMethodWithError("paymentService.RecordPayment", err, "duesID", duesID)
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	view := domain.Reconcile(updated, totalPaid)

	// Receipt email and the in-app feed are best-effort; the payment is
	// already committed.
	s.notifyPaymentRecorded(ctx, updated, p, &view)

	logger.ExitMethod("paymentService.RecordPayment", "paymentID", p.ID, "status", view.Status, "remaining", view.RemainingAmount)
	return &view, nil
}

func (s *paymentService) notifyPaymentRecorded(ctx context.Context, dues *domain.Dues, p *domain.Payment, view *domain.DuesStatusView) {
	member, err := s.memberRepo.GetByID(ctx, dues.MemberID)
	if err != nil {
		logger.Warn("Payment recorded but member lookup failed", "memberID", dues.MemberID, "error", err)
		return
	}

	org, _ := s.orgRepo.GetByID(ctx, dues.OrgID)
	orgName := ""
	if org != nil {
		orgName = org.Name
	}

	if member.Email != "" {
		if err := s.emailSvc.SendPaymentReceipt(ctx, member.Email, member.FullName, orgName, p.Amount, p.Method, p.Reference); err != nil {
			logger.Warn("Failed to send payment receipt", "memberID", member.ID, "error", err)
		}
	}

	// Notify the org's admins and treasurers in-app.
	memberships, err := s.userRepo.ListMembershipsByOrg(ctx, dues.OrgID)
	if err != nil {
		return
	}
	for _, m := range memberships {
		if !m.CanManageDues() {
			continue
		}
		notification := &domain.Notification{
			UserID:  m.UserID,
			OrgID:   dues.OrgID,
			Title:   "Payment Recorded",
			Message: fmt.Sprintf("%s paid %d for %d/%d dues (now %s)", member.FullName, p.Amount, dues.Month, dues.Year, view.Status),
			Attributes: map[string]string{
				"topic":      "dues_payment_recorded",
				"dues_id":    fmt.Sprintf("%d", dues.ID),
				"payment_id": fmt.Sprintf("%d", p.ID),
				"member_id":  fmt.Sprintf("%d", member.ID),
				"amount":     fmt.Sprintf("%d", p.Amount),
			},
		}
		_ = s.notificationRepo.Create(ctx, notification)
	}
}

func (s *paymentService) ListPayments(ctx context.Context, actorID, duesID int32) ([]domain.Payment, error) {
	dues, err := s.duesRepo.GetByID(ctx, duesID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, dues.OrgID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByDues(ctx, duesID)
}
