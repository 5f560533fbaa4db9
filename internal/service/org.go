package service

import (
	"context"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

type organizationService struct {
	accessGate
	orgRepo repository.OrganizationRepository
}

func NewOrganizationService(orgRepo repository.OrganizationRepository, userRepo repository.UserRepository) OrganizationService {
	return &organizationService{
		accessGate: accessGate{userRepo: userRepo},
		orgRepo:    orgRepo,
	}
}

func (s *organizationService) CreateOrganization(ctx context.Context, creatorID int32, org *domain.Organization) error {
	if org.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return err
	}

	// Creator becomes ADMIN of the new organization.
	membership := &domain.Membership{
		UserID: creatorID,
		OrgID:  org.ID,
		Status: domain.MembershipStatusActive,
		Role:   domain.MembershipRoleAdmin,
	}
	return s.userRepo.AddMembership(ctx, membership)
}

func (s *organizationService) GetOrganization(ctx context.Context, actorID, orgID int32) (*domain.Organization, error) {
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, orgID)
}

func (s *organizationService) UpdateOrganization(ctx context.Context, actorID int32, org *domain.Organization) error {
	if org.Name == "" {
		return domain.NewValidationError("name", "is required")
	}
	if _, err := s.requireTreasurer(ctx, actorID, org.ID); err != nil {
		return err
	}
	return s.orgRepo.Update(ctx, org)
}
