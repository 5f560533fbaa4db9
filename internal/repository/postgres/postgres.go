package postgres

import (
	"database/sql"

	"dueshub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.MemberRepository
	repository.DuesRepository
	repository.PaymentRepository
	repository.TransactionRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		OrganizationRepository: NewOrganizationRepository(db),
		MemberRepository:       NewMemberRepository(db),
		DuesRepository:         NewDuesRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
