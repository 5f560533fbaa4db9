package domain

type Organization struct {
	ID                int32  `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	TreasurerEmail    string `json:"treasurer_email"`
	TreasurerPhone    string `json:"treasurer_phone"`
	DefaultDuesAmount int64  `json:"default_dues_amount"` // 0 means fall back to the configured default
	CreatedOn         string `json:"created_on"`
}
