package domain

import "time"

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Transaction is an organization-level cash-flow ledger entry. It stands
// alone and is never reconciled against dues.
type Transaction struct {
	ID         int32           `json:"id"`
	OrgID      int32           `json:"org_id"`
	Type       TransactionType `json:"type"`
	Amount     int64           `json:"amount"`
	Category   string          `json:"category"`
	Note       string          `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	CreatedBy  int32           `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

type TransactionSummary struct {
	IncomeTotal  int64 `json:"income_total"`
	ExpenseTotal int64 `json:"expense_total"`
	Net          int64 `json:"net"`
}
