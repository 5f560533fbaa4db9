package domain

import "time"

// Member is one entry of an organization's dues-paying roster. Members are
// not necessarily application users; they carry their own contact info for
// reminder delivery.
type Member struct {
	ID       int32     `json:"id"`
	OrgID    int32     `json:"org_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email,omitempty"`
	Phone    string    `json:"phone,omitempty"`
	IsActive bool      `json:"is_active"`
	JoinedAt time.Time `json:"joined_at"`
}
