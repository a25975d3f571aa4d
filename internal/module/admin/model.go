package admin

import "time"

// User is a platform operator account for the dashboard.
type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"uid"`
	Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	DisplayName  string     `gorm:"size:255" json:"displayName"`
	PasswordHash string     `gorm:"size:72;not null" json:"-"`
	LastSignInAt *time.Time `json:"lastSignInAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "admin_users"
}

// Clone returns a copy.
func (u *User) Clone() *User {
	cp := *u
	if u.LastSignInAt != nil {
		t := *u.LastSignInAt
		cp.LastSignInAt = &t
	}
	return &cp
}
