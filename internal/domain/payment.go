package domain

import "time"

// Payment is an immutable, append-only record of money applied against one
// dues record. Multiple payments may target the same dues record; partial
// payments accumulate.
type Payment struct {
	ID        int32     `json:"id"`
	DuesID    int32     `json:"dues_id"`
	MemberID  int32     `json:"member_id"`
	Amount    int64     `json:"amount"` // positive, smallest currency unit
	Method    string    `json:"method"` // e.g. CASH, TRANSFER
	Note      string    `json:"note,omitempty"`
	Reference string    `json:"reference"` // receipt reference, assigned at record time
	CreatedBy int32     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
