// internal/users/service.go
// Business logic for accounts, sessions and the social graph.

package users

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/snapgram/snapgram-backend/internal/common/utils"
	"github.com/snapgram/snapgram-backend/internal/config"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrTokenRevoked       = errors.New("token revoked")
)

// MediaUploader stores a normalized image and returns its durable URL
type MediaUploader interface {
	UploadImage(ctx context.Context, r io.Reader, folder string) (string, error)
}

// WelcomeMailer sends the post-registration email
type WelcomeMailer interface {
	SendWelcome(ctx context.Context, email, username string) error
}

// Service implements account and social-graph operations
type Service struct {
	repo        Repository
	redis       *redis.Client // nil disables the logout denylist
	uploader    MediaUploader
	mailer      WelcomeMailer
	jwtSecret   string
	bcryptCost  int
	tokenExpiry time.Duration
	sendWelcome bool
}

// NewService creates the users service
func NewService(repo Repository, redisClient *redis.Client, uploader MediaUploader, mailer WelcomeMailer, cfg *config.Config) *Service {
	return &Service{
		repo:        repo,
		redis:       redisClient,
		uploader:    uploader,
		mailer:      mailer,
		jwtSecret:   cfg.JWTSecret,
		bcryptCost:  cfg.BCryptCost,
		tokenExpiry: cfg.TokenExpiry,
		sendWelcome: cfg.EnableWelcomeEmail,
	}
}

// Register creates a new account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.sendWelcome && s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(context.Background(), user.Email, user.Username); err != nil {
				log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
			}
		}()
	}

	return user, nil
}

// Login verifies credentials and issues a session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout denylists the token for its remaining lifetime
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.redis == nil {
		return nil
	}

	claims, err := utils.ValidateJWT(token, s.jwtSecret)
	if err != nil {
		// Expired or garbage tokens need no denylist entry
		return nil
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 {
		return nil
	}

	return s.redis.Set(ctx, "session:revoked:"+token, "1", ttl).Err()
}

// ValidateToken validates a session token, rejecting denylisted ones
func (s *Service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		revoked, err := s.redis.Exists(ctx, "session:revoked:"+token).Result()
		if err == nil && revoked > 0 {
			return nil, ErrTokenRevoked
		}
	}

	return claims, nil
}

// TokenExpiry exposes the configured session lifetime for cookie setup
func (s *Service) TokenExpiry() time.Duration {
	return s.tokenExpiry
}

// GetProfile returns a user with posts, bookmarks and graph populated
func (s *Service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, err := s.repo.GetFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.repo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.repo.GetUserPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.repo.GetBookmarkedPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:      *user,
		Followers: followers,
		Following: following,
		Posts:     posts,
		Bookmarks: bookmarks,
	}, nil
}

// EditProfile applies the optional mutations; picture may be nil
func (s *Service) EditProfile(ctx context.Context, userID int64, req *EditProfileRequest, picture io.Reader) (*Profile, error) {
	var pictureURL *string
	if picture != nil {
		if s.uploader == nil {
			return nil, errors.New("media uploads not configured")
		}
		url, err := s.uploader.UploadImage(ctx, picture, "profiles")
		if err != nil {
			return nil, err
		}
		pictureURL = &url
	}

	if err := s.repo.UpdateProfile(ctx, userID, req.Bio, req.Gender, pictureURL); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

// SuggestedUsers lists users excluding the caller
func (s *Service) SuggestedUsers(ctx context.Context, callerID int64) ([]UserSummary, error) {
	return s.repo.GetSuggestedUsers(ctx, callerID)
}

// FollowOrUnfollow toggles the follow edge and reports the new state
func (s *Service) FollowOrUnfollow(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == targetID {
		return false, ErrSelfFollow
	}

	if _, err := s.repo.GetUserByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.repo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.repo.Unfollow(ctx, actorID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.repo.Follow(ctx, actorID, targetID); err != nil {
		return false, err
	}
	return true, nil
}
