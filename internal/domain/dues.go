package domain

import "time"

type DuesStatus string

const (
	DuesStatusPending DuesStatus = "PENDING"
	DuesStatusPartial DuesStatus = "PARTIAL"
	DuesStatusPaid    DuesStatus = "PAID"
)

// Dues is one member's obligation for one (month, year) pair within one
// organization. Unique on (member_id, month, year). The persisted Status
// column is a cached summary; the source of truth is always the payment sum.
type Dues struct {
	ID        int32      `json:"id"`
	OrgID     int32      `json:"org_id"`
	MemberID  int32      `json:"member_id"`
	Month     int        `json:"month"` // 1..12
	Year      int        `json:"year"`
	Amount    int64      `json:"amount"` // smallest currency unit
	Status    DuesStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DuesStatusView is the derived, never-persisted reconciliation of a Dues
// record against its payments. RemainingAmount is clamped at zero;
// overpayment stays detectable through TotalPaid > Amount.
type DuesStatusView struct {
	DuesID          int32      `json:"dues_id"`
	Month           int        `json:"month"`
	Year            int        `json:"year"`
	Amount          int64      `json:"amount"`
	TotalPaid       int64      `json:"total_paid"`
	RemainingAmount int64      `json:"remaining_amount"`
	Status          DuesStatus `json:"status"`
}

// SumPayments totals an ordered set of payments applied to one dues record.
func SumPayments(payments []Payment) int64 {
	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// DeriveStatus classifies a dues record from its payment total:
// PAID iff total >= amount, PARTIAL iff 0 < total < amount, PENDING otherwise.
func DeriveStatus(amount, totalPaid int64) DuesStatus {
	switch {
	case totalPaid >= amount:
		return DuesStatusPaid
	case totalPaid > 0:
		return DuesStatusPartial
	default:
		return DuesStatusPending
	}
}

// Reconcile computes the status view for a dues record given its payment
// total. Pure; the only place clamping happens.
func Reconcile(d *Dues, totalPaid int64) DuesStatusView {
	remaining := d.Amount - totalPaid
	if remaining < 0 {
		remaining = 0
	}
	return DuesStatusView{
		DuesID:          d.ID,
		Month:           d.Month,
		Year:            d.Year,
		Amount:          d.Amount,
		TotalPaid:       totalPaid,
		RemainingAmount: remaining,
		Status:          DeriveStatus(d.Amount, totalPaid),
	}
}

// DuesBalance pairs a dues record with its payment total as loaded from the
// store in one aggregate query.
type DuesBalance struct {
	Dues      Dues  `json:"dues"`
	TotalPaid int64 `json:"total_paid"`
}

func (b *DuesBalance) View() DuesStatusView {
	return Reconcile(&b.Dues, b.TotalPaid)
}

// MemberDuesStatus is one row of the unpaid-members listing for a period.
type MemberDuesStatus struct {
	Member          Member     `json:"member"`
	DuesID          int32      `json:"dues_id"`
	Amount          int64      `json:"amount"`
	TotalPaid       int64      `json:"total_paid"`
	RemainingAmount int64      `json:"remaining_amount"`
	Status          DuesStatus `json:"status"`
}

// MemberYearStatus is one row of the yearly matrix: months without a dues
// record are absent from the map, never zero-filled.
type MemberYearStatus struct {
	Member  Member                 `json:"member"`
	Monthly map[int]DuesStatusView `json:"monthly"`
}

// ReminderTarget is a dues record still owed for a period, joined with the
// member's contact info, ready to hand to a delivery collaborator.
type ReminderTarget struct {
	Member          Member `json:"member"`
	DuesID          int32  `json:"dues_id"`
	Month           int    `json:"month"`
	Year            int    `json:"year"`
	RemainingAmount int64  `json:"remaining_amount"`
}

// ReminderRun summarizes one reminder invocation.
type ReminderRun struct {
	Month     int `json:"month"`
	Year      int `json:"year"`
	Attempted int `json:"attempted"`
	Sent      int `json:"sent"`
}
