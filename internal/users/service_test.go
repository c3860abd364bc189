// internal/users/service_test.go

package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/snapgram/snapgram-backend/internal/config"
)

// fakeRepository is an in-memory Repository for service tests
type fakeRepository struct {
	nextID  int64
	users   map[int64]*User
	follows map[[2]int64]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:  1,
		users:   make(map[int64]*User),
		follows: make(map[[2]int64]bool),
	}
}

func (r *fakeRepository) CreateUser(ctx context.Context, user *User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
		if existing.Username == user.Username {
			return ErrUsernameTaken
		}
	}

	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepository) UpdateProfile(ctx context.Context, userID int64, bio, gender, profilePicture *string) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	if bio != nil {
		user.Bio = *bio
	}
	if gender != nil {
		user.Gender = gender
	}
	if profilePicture != nil {
		user.ProfilePicture = *profilePicture
	}
	return nil
}

func (r *fakeRepository) GetSuggestedUsers(ctx context.Context, excludeUserID int64) ([]UserSummary, error) {
	suggestions := []UserSummary{}
	for _, user := range r.users {
		if user.ID == excludeUserID {
			continue
		}
		suggestions = append(suggestions, UserSummary{ID: user.ID, Username: user.Username})
	}
	return suggestions, nil
}

func (r *fakeRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return r.follows[[2]int64{followerID, followeeID}], nil
}

func (r *fakeRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	r.follows[[2]int64{followerID, followeeID}] = true
	return nil
}

func (r *fakeRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	delete(r.follows, [2]int64{followerID, followeeID})
	return nil
}

func (r *fakeRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for pair := range r.follows {
		if pair[1] == userID {
			ids = append(ids, pair[0])
		}
	}
	return ids, nil
}

func (r *fakeRepository) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	for pair := range r.follows {
		if pair[0] == userID {
			ids = append(ids, pair[1])
		}
	}
	return ids, nil
}

func (r *fakeRepository) GetUserPosts(ctx context.Context, userID int64) ([]PostInfo, error) {
	return []PostInfo{}, nil
}

func (r *fakeRepository) GetBookmarkedPosts(ctx context.Context, userID int64) ([]PostInfo, error) {
	return []PostInfo{}, nil
}

func newTestService(repo Repository) *Service {
	cfg := &config.Config{
		JWTSecret:   "test-secret",
		BCryptCost:  bcrypt.MinCost,
		TokenExpiry: time.Hour,
	}
	return NewService(repo, nil, nil, nil, cfg)
}

func register(t *testing.T, svc *Service, username, email string) *User {
	t.Helper()

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService(newFakeRepository())

	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc := newTestService(newFakeRepository())
	registered := register(t, svc, "alice", "alice@example.com")

	user, token, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepository())
	register(t, svc, "alice", "alice@example.com")

	_, _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newFakeRepository())

	// An unknown email reads the same as a bad password
	_, _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFollowToggle(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)

	alice := register(t, svc, "alice", "alice@example.com")
	bob := register(t, svc, "bob", "bob@example.com")

	following, err := svc.FollowOrUnfollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	profile, err := svc.GetProfile(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{alice.ID}, profile.Followers)

	// The second toggle restores the original state
	following, err = svc.FollowOrUnfollow(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	profile, err = svc.GetProfile(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Followers)
}

func TestSelfFollowRejected(t *testing.T) {
	svc := newTestService(newFakeRepository())
	alice := register(t, svc, "alice", "alice@example.com")

	_, err := svc.FollowOrUnfollow(context.Background(), alice.ID, alice.ID)

	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowUnknownTarget(t *testing.T) {
	svc := newTestService(newFakeRepository())
	alice := register(t, svc, "alice", "alice@example.com")

	_, err := svc.FollowOrUnfollow(context.Background(), alice.ID, 999)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEditProfile(t *testing.T) {
	svc := newTestService(newFakeRepository())
	alice := register(t, svc, "alice", "alice@example.com")

	bio := "hello there"
	gender := "female"
	profile, err := svc.EditProfile(context.Background(), alice.ID, &EditProfileRequest{
		Bio:    &bio,
		Gender: &gender,
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "hello there", profile.Bio)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, "female", *profile.Gender)
}
