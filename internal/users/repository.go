// internal/users/repository.go

package users

import (
	"context"
)

// Repository is the persistence boundary for accounts and the social graph
type Repository interface {
	// Accounts
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, userID int64, bio, gender, profilePicture *string) error
	GetSuggestedUsers(ctx context.Context, excludeUserID int64) ([]UserSummary, error)

	// Social graph
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	Follow(ctx context.Context, followerID, followeeID int64) error
	Unfollow(ctx context.Context, followerID, followeeID int64) error
	GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error)

	// Profile population
	GetUserPosts(ctx context.Context, userID int64) ([]PostInfo, error)
	GetBookmarkedPosts(ctx context.Context, userID int64) ([]PostInfo, error)
}
