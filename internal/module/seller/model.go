package seller

import "time"

// Seller holds the OAuth credentials a seller delegated to the marketplace.
// Tokens never leave the process through JSON.
type Seller struct {
	ID           string     `json:"id" gorm:"primaryKey;size:64"`
	AccessToken  string     `json:"-" gorm:"type:text;not null"`
	RefreshToken string     `json:"-" gorm:"type:text"`
	PublicKey    string     `json:"public_key" gorm:"size:128"`
	Scope        string     `json:"scope,omitempty" gorm:"size:255"`
	LiveMode     bool       `json:"live_mode"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ConnectedAt  time.Time  `json:"connected_at" gorm:"not null;index"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the table name for Seller.
func (Seller) TableName() string {
	return "sellers"
}

// Clone returns a copy safe to hand out from in-memory stores.
func (s *Seller) Clone() *Seller {
	cp := *s
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		cp.ExpiresAt = &t
	}
	return &cp
}
