package domain

type User struct {
	ID          int32  `json:"id"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	CreatedOn   string `json:"created_on"`
}

type MembershipStatus string

const (
	MembershipStatusActive  MembershipStatus = "ACTIVE"
	MembershipStatusSuspend MembershipStatus = "SUSPEND"
)

type MembershipRole string

const (
	MembershipRoleAdmin     MembershipRole = "ADMIN"
	MembershipRoleTreasurer MembershipRole = "TREASURER"
	MembershipRoleMember    MembershipRole = "MEMBER"
)

// Membership is a user's role-bearing association with one organization.
// Every core operation is authorized against the actor's membership row
// for the target organization.
type Membership struct {
	UserID   int32            `json:"user_id"`
	OrgID    int32            `json:"org_id"`
	JoinedOn string           `json:"joined_on"`
	Status   MembershipStatus `json:"status"`
	Role     MembershipRole   `json:"role"`
}

// CanManageDues reports whether the membership may perform write
// operations on dues, payments and transactions.
func (m *Membership) CanManageDues() bool {
	return m.Status == MembershipStatusActive &&
		(m.Role == MembershipRoleAdmin || m.Role == MembershipRoleTreasurer)
}
