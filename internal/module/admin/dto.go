package admin

import "time"

// UserMetadata carries account timestamps.
type UserMetadata struct {
	CreationTime   time.Time  `json:"creationTime"`
	LastSignInTime *time.Time `json:"lastSignInTime"`
}

// UserResponse is the public view of an admin account.
type UserResponse struct {
	UID         string       `json:"uid"`
	Email       string       `json:"email"`
	DisplayName string       `json:"displayName"`
	Metadata    UserMetadata `json:"metadata"`
}

// ToResponse converts the account to its public view.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Metadata: UserMetadata{
			CreationTime:   u.CreatedAt,
			LastSignInTime: u.LastSignInAt,
		},
	}
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries an issued session token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// MessageResponse acknowledges a mutation.
type MessageResponse struct {
	Message string `json:"message"`
	UID     string `json:"uid,omitempty"`
}
