package service

import (
	"context"
	"errors"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

// accessGate is the single authorization check invoked before every core
// operation: actor -> organization -> permitted. Services embed it instead
// of re-implementing role checks per operation.
type accessGate struct {
	userRepo repository.UserRepository
}

// requireMember allows any ACTIVE membership of the target organization,
// or the system actor (scheduled jobs).
func (g *accessGate) requireMember(ctx context.Context, actorID, orgID int32) (*domain.Membership, error) {
	if actorID == SystemActor {
		return nil, nil
	}
	m, err := g.userRepo.GetMembership(ctx, actorID, orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	if m.Status != domain.MembershipStatusActive {
		return nil, domain.ErrAccessDenied
	}
	return m, nil
}

// requireTreasurer allows ADMIN or TREASURER memberships, or the system actor.
func (g *accessGate) requireTreasurer(ctx context.Context, actorID, orgID int32) (*domain.Membership, error) {
	if actorID == SystemActor {
		return nil, nil
	}
	m, err := g.requireMember(ctx, actorID, orgID)
	if err != nil {
		return nil, err
	}
	if !m.CanManageDues() {
		return nil, domain.ErrAccessDenied
	}
	return m, nil
}
