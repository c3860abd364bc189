// internal/users/models.go
// Data structures for accounts, sessions and the social graph.

package users

import (
	"time"
)

// User represents a user account
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`
	Bio            string    `json:"bio" db:"bio"`
	Gender         *string   `json:"gender,omitempty" db:"gender"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the public shape of a user embedded in other payloads
type UserSummary struct {
	ID             int64  `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	ProfilePicture string `json:"profilePicture" db:"profile_picture"`
}

// PostInfo is a post as it appears inside a profile response
type PostInfo struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Caption   string    `json:"caption" db:"caption"`
	ImageURL  string    `json:"image" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Profile is a user with the social graph and content populated
type Profile struct {
	User
	Followers []int64    `json:"followers"`
	Following []int64    `json:"following"`
	Posts     []PostInfo `json:"posts"`
	Bookmarks []PostInfo `json:"bookmarks"`
}

// RegisterRequest is what the client sends to create an account
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

// LoginRequest carries credentials for session creation
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EditProfileRequest carries the optional profile mutations. The
// profile picture travels alongside as a multipart file part.
type EditProfileRequest struct {
	Bio    *string `json:"bio" validate:"omitempty,max=300"`
	Gender *string `json:"gender" validate:"omitempty,oneof=male female"`
}

// LoginResponse is the user summary returned with the session cookie
type LoginResponse struct {
	User    *User  `json:"user"`
	Message string `json:"message"`
}

// FollowResponse reports the state after a follow toggle
type FollowResponse struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}
