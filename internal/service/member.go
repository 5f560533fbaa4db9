package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/logger"
	"dueshub-backend/internal/repository"
)

type memberService struct {
	accessGate
	memberRepo repository.MemberRepository
	orgRepo    repository.OrganizationRepository
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	orgRepo repository.OrganizationRepository,
	userRepo repository.UserRepository,
) MemberService {
	return &memberService{
		accessGate: accessGate{userRepo: userRepo},
		memberRepo: memberRepo,
		orgRepo:    orgRepo,
	}
}

func (s *memberService) CreateMember(ctx context.Context, actorID int32, member *domain.Member) error {
	if member.FullName == "" {
		return domain.NewValidationError("full_name", "is required")
	}
	if _, err := s.requireTreasurer(ctx, actorID, member.OrgID); err != nil {
		return err
	}
	if _, err := s.orgRepo.GetByID(ctx, member.OrgID); err != nil {
		return err
	}
	member.IsActive = true
	return s.memberRepo.Create(ctx, member)
}

func (s *memberService) UpdateMember(ctx context.Context, actorID int32, member *domain.Member) error {
	if member.FullName == "" {
		return domain.NewValidationError("full_name", "is required")
	}
	existing, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return err
	}
	if _, err := s.requireTreasurer(ctx, actorID, existing.OrgID); err != nil {
		return err
	}
	member.OrgID = existing.OrgID
	return s.memberRepo.Update(ctx, member)
}

// DeactivateMember soft-removes the member from dues runs; existing dues
// and payments are kept.
func (s *memberService) DeactivateMember(ctx context.Context, actorID, memberID int32) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if _, err := s.requireTreasurer(ctx, actorID, member.OrgID); err != nil {
		return err
	}
	member.IsActive = false
	return s.memberRepo.Update(ctx, member)
}

// DeleteMember hard-deletes the member; the store cascades the delete to
// their dues and payments.
func (s *memberService) DeleteMember(ctx context.Context, actorID, memberID int32) error {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if _, err := s.requireTreasurer(ctx, actorID, member.OrgID); err != nil {
		return err
	}
	return s.memberRepo.Delete(ctx, memberID)
}

func (s *memberService) ListMembers(ctx context.Context, actorID, orgID int32, activeOnly bool) ([]domain.Member, error) {
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListByOrg(ctx, orgID, activeOnly)
}

// ImportMembersCSV reads rows of full_name,email,phone (an optional header
// row is skipped) and creates them in one all-or-nothing batch.
func (s *memberService) ImportMembersCSV(ctx context.Context, actorID, orgID int32, csvData []byte) (int, error) {
	logger.EnterMethod("memberService.ImportMembersCSV", "orgID", orgID, "bytes", len(csvData))

	if _, err := s.requireTreasurer(ctx, actorID, orgID); err != nil {
		return 0, err
	}
	if _, err := s.orgRepo.GetByID(ctx, orgID); err != nil {
		return 0, err
	}

	reader := csv.NewReader(bytes.NewReader(csvData))
	reader.FieldsPerRecord = -1

	var members []*domain.Member
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, domain.NewValidationError("csv", fmt.Sprintf("malformed input at line %d", line+1))
		}
		line++

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "full_name") {
			continue
		}

		name := strings.TrimSpace(record[0])
		if name == "" {
			return 0, domain.NewValidationError("full_name", fmt.Sprintf("missing at line %d", line))
		}
		m := &domain.Member{OrgID: orgID, FullName: name, IsActive: true}
		if len(record) > 1 {
			m.Email = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			m.Phone = strings.TrimSpace(record[2])
		}
		members = append(members, m)
	}

	if len(members) == 0 {
		return 0, domain.NewValidationError("csv", "no member rows found")
	}

	if err := s.memberRepo.CreateBatch(ctx, members); err != nil {
		logger.ExitMethodWithError("memberService.ImportMembersCSV", err, "orgID", orgID)
		return 0, fmt.Errorf("failed to import members: %w", err)
	}

	logger.ExitMethod("memberService.ImportMembersCSV", "count", len(members))
	return len(members), nil
}
