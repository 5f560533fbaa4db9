package service

import (
	"context"
	"fmt"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type duesService struct {
	accessGate
	duesRepo      repository.DuesRepository
	memberRepo    repository.MemberRepository
	orgRepo       repository.OrganizationRepository
	defaultAmount int64
}

func NewDuesService(
	duesRepo repository.DuesRepository,
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
	defaultAmount int64,
) DuesService {
	return &duesService{
		accessGate:    accessGate{userRepo: userRepo},
		duesRepo:      duesRepo,
		memberRepo:    memberRepo,
		orgRepo:       orgRepo,
		defaultAmount: defaultAmount,
	}
}

func validatePeriod(month, year int) error {
	if err := domain.ValidateMonth(month); err != nil {
		return err
	}
	return domain.ValidateYear(year)
}

func (s *duesService) EnsureDues(ctx context.Context, actorID, orgID, memberID int32, month, year int, amount int64) (*domain.Dues, error) {
	logger.EnterMethod("duesService.EnsureDues", "orgID", orgID, "memberID", memberID, "month", month, "year", year)

	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}
	if _, err := s.requireTreasurer(ctx, actorID, orgID); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		logger.ExitMethodWithError("duesService.EnsureDues", err, "memberID", memberID)
		return nil, err
	}
	if member.OrgID != orgID {
		return nil, domain.ErrNotFound
	}

	d := &domain.Dues{OrgID: orgID, MemberID: memberID, Month: month, Year: year, Amount: amount}
	created, err := s.duesRepo.Ensure(ctx, d)
	if err != nil {
		logger.ExitMethodWithError("duesService.EnsureDues", err, "memberID", memberID)
		return nil, fmt.Errorf("failed to ensure dues: %w", err)
	}

	logger.ExitMethod("duesService.EnsureDues", "duesID", d.ID, "created", created)
	return d, nil
}

func (s *duesService) SetDuesForPeriod(ctx context.Context, actorID, orgID int32, month, year int, amount int64, memberID *int32) (int, error) {
	logger.EnterMethod("duesService.SetDuesForPeriod", "orgID", orgID, "month", month, "year", year, "amount", amount)

	if err := validatePeriod(month, year); err != nil {
		return 0, err
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return 0, err
	}
	if _, err := s.requireTreasurer(ctx, actorID, orgID); err != nil {
		return 0, err
	}
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return 0, err
	}

	// Single-member upsert: update amount if the record exists, create otherwise.
	if memberID != nil {
		member, err := s.memberRepo.GetByID(ctx, *memberID)
		if err != nil {
			return 0, err
		}
		if member.OrgID != orgID {
			return 0, domain.ErrNotFound
		}
		d := &domain.Dues{OrgID: orgID, MemberID: *memberID, Month: month, Year: year, Amount: amount}
		if err := s.duesRepo.Upsert(ctx, d); err != nil {
			return 0, fmt.Errorf("failed to upsert dues: %w", err)
		}
		logger.ExitMethod("duesService.SetDuesForPeriod", "memberID", *memberID, "duesID", d.ID)
		return 1, nil
	}

	// Batch: one all-or-nothing upsert over every active member.
	members, err := s.memberRepo.ListByOrg(ctx, orgID, true)
	if err != nil {
		return 0, err
	}
	ids := make([]int32, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}

	count, err := s.duesRepo.UpsertForMembers(ctx, orgID, month, year, amount, ids)
	if err != nil {
		logger.ExitMethodWithError("duesService.SetDuesForPeriod", err, "orgID", orgID)
		return 0, fmt.Errorf("failed to upsert dues batch: %w", err)
	}

	logger.ExitMethod("duesService.SetDuesForPeriod", "count", count)
	return count, nil
}

func (s *duesService) OutstandingDuesForMember(ctx context.Context, actorID, memberID int32) ([]domain.DuesStatusView, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, member.OrgID); err != nil {
		return nil, err
	}

	balances, err := s.duesRepo.ListOutstandingByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// Recompute from payments rather than trusting the stored status: a
	// record whose payments already cover it is dropped even if the cached
	// column still says PARTIAL.
	views := make([]domain.DuesStatusView, 0, len(balances))
	for i := range balances {
		v := balances[i].View()
		if v.RemainingAmount > 0 {
			views = append(views, v)
		}
	}
	return views, nil
}

// UnpaidMembersForPeriod materializes a dues record for every active member
// missing one for the period, so the reminder workflow always has a concrete
// obligation to reference. The yearly matrix deliberately does not do this.
func (s *duesService) UnpaidMembersForPeriod(ctx context.Context, actorID, orgID int32, month, year int) ([]domain.MemberDuesStatus, error) {
	logger.EnterMethod("duesService.UnpaidMembersForPeriod", "orgID", orgID, "month", month, "year", year)

	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	amount := org.DefaultDuesAmount
	if amount <= 0 {
		amount = s.defaultAmount
	}

	members, err := s.memberRepo.ListByOrg(ctx, orgID, true)
	if err != nil {
		return nil, err
	}
	balances, err := s.duesRepo.ListByOrgPeriod(ctx, orgID, month, year)
	if err != nil {
		return nil, err
	}
	byMember := make(map[int32]domain.DuesBalance, len(balances))
	for _, b := range balances {
		byMember[b.Dues.MemberID] = b
	}

	raced := false
	for _, m := range members {
		if _, ok := byMember[m.ID]; ok {
			continue
		}
		d := &domain.Dues{OrgID: orgID, MemberID: m.ID, Month: month, Year: year, Amount: amount}
		created, err := s.duesRepo.Ensure(ctx, d)
		if err != nil {
			logger.ExitMethodWithError("duesService.UnpaidMembersForPeriod", err, "memberID", m.ID)
			return nil, fmt.Errorf("failed to materialize dues: %w", err)
		}
		if !created {
			// Lost the creation race; the existing record may already
			// carry payments, so its balance must be re-read.
			raced = true
			continue
		}
		byMember[m.ID] = domain.DuesBalance{Dues: *d}
	}
	if raced {
		balances, err = s.duesRepo.ListByOrgPeriod(ctx, orgID, month, year)
		if err != nil {
			return nil, err
		}
		for _, b := range balances {
			byMember[b.Dues.MemberID] = b
		}
	}

	// Members come back ordered by full name; that ordering is kept.
	var result []domain.MemberDuesStatus
	for _, m := range members {
		b, ok := byMember[m.ID]
		if !ok {
			continue
		}

		v := b.View()
		if v.Status == domain.DuesStatusPaid {
			continue
		}
		result = append(result, domain.MemberDuesStatus{
			Member:          m,
			DuesID:          v.DuesID,
			Amount:          v.Amount,
			TotalPaid:       v.TotalPaid,
			RemainingAmount: v.RemainingAmount,
			Status:          v.Status,
		})
	}

	logger.ExitMethod("duesService.UnpaidMembersForPeriod", "count", len(result))
	return result, nil
}

// YearlyStatusMatrix is read-only: months without a dues record are simply
// absent from the map, never zero-filled, and nothing is created implicitly.
func (s *duesService) YearlyStatusMatrix(ctx context.Context, actorID, orgID int32, year int) ([]domain.MemberYearStatus, error) {
	if err := domain.ValidateYear(year); err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByOrg(ctx, orgID, true)
	if err != nil {
		return nil, err
	}
	balances, err := s.duesRepo.ListByOrgYear(ctx, orgID, year)
	if err != nil {
		return nil, err
	}

	monthly := make(map[int32]map[int]domain.DuesStatusView, len(members))
	for i := range balances {
		b := balances[i]
		if monthly[b.Dues.MemberID] == nil {
			monthly[b.Dues.MemberID] = make(map[int]domain.DuesStatusView, 12)
		}
		monthly[b.Dues.MemberID][b.Dues.Month] = b.View()
	}

	result := make([]domain.MemberYearStatus, 0, len(members))
	for _, m := range members {
		months := monthly[m.ID]
		if months == nil {
			months = map[int]domain.DuesStatusView{}
		}
		result = append(result, domain.MemberYearStatus{Member: m, Monthly: months})
	}
	return result, nil
}
