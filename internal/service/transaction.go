package service

import (
	"context"

	"dueshub-backend/internal/domain"
	"dueshub-backend/internal/repository"
)

type transactionService struct {
	accessGate
	txRepo repository.TransactionRepository
}

func NewTransactionService(txRepo repository.TransactionRepository, userRepo repository.UserRepository) TransactionService {
	return &transactionService{
		accessGate: accessGate{userRepo: userRepo},
		txRepo:     txRepo,
	}
}

func (s *transactionService) RecordTransaction(ctx context.Context, actorID int32, tx *domain.Transaction) error {
	if err := domain.ValidateAmount(tx.Amount); err != nil {
		return err
	}
	if tx.Type != domain.TransactionTypeIncome && tx.Type != domain.TransactionTypeExpense {
		return domain.NewValidationError("type", "must be INCOME or EXPENSE")
	}
	if tx.Category == "" {
		return domain.NewValidationError("category", "is required")
	}
	if _, err := s.requireTreasurer(ctx, actorID, tx.OrgID); err != nil {
		return err
	}
	tx.CreatedBy = actorID
	return s.txRepo.Create(ctx, tx)
}

func (s *transactionService) ListTransactions(ctx context.Context, actorID, orgID int32, txType, category string, page, pageSize int32) ([]domain.Transaction, int32, error) {
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.txRepo.ListByOrg(ctx, orgID, txType, category, page, pageSize)
}

func (s *transactionService) MonthlySummary(ctx context.Context, actorID, orgID int32, month, year int) (*domain.TransactionSummary, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if _, err := s.requireMember(ctx, actorID, orgID); err != nil {
		return nil, err
	}
	return s.txRepo.Summary(ctx, orgID, month, year)
}
