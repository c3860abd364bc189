// internal/users/postgres.go

package users

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates the postgres-backed repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, profile_picture, bio, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.ProfilePicture, &user.Bio, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "username") {
				return ErrUsernameTaken
			}
			return ErrEmailTaken
		}
		return err
	}

	return nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT id, username, email, password_hash, profile_picture, bio, gender, created_at, updated_at
			  FROM users WHERE id = $1`

	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	query := `SELECT id, username, email, password_hash, profile_picture, bio, gender, created_at, updated_at
			  FROM users WHERE email = $1`

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, bio, gender, profilePicture *string) error {
	query := `
		UPDATE users SET
			bio = COALESCE($2, bio),
			gender = COALESCE($3, gender),
			profile_picture = COALESCE($4, profile_picture),
			updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, bio, gender, profilePicture)
	if err != nil {
		return err
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) GetSuggestedUsers(ctx context.Context, excludeUserID int64) ([]UserSummary, error) {
	suggestions := []UserSummary{}
	query := `SELECT id, username, profile_picture FROM users
			  WHERE id <> $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &suggestions, query, excludeUserID); err != nil {
		return nil, err
	}

	return suggestions, nil
}

func (r *postgresRepository) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var following bool
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	if err := r.db.GetContext(ctx, &following, query, followerID, followeeID); err != nil {
		return false, err
	}

	return following, nil
}

func (r *postgresRepository) Follow(ctx context.Context, followerID, followeeID int64) error {
	// Insert-if-absent keeps the operation idempotent under retries
	query := `INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
			  ON CONFLICT DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	return err
}

func (r *postgresRepository) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`

	_, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	return err
}

func (r *postgresRepository) GetFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	query := `SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *postgresRepository) GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	query := `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *postgresRepository) GetUserPosts(ctx context.Context, userID int64) ([]PostInfo, error) {
	posts := []PostInfo{}
	query := `SELECT id, author_id, caption, image_url, created_at
			  FROM posts WHERE author_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postgresRepository) GetBookmarkedPosts(ctx context.Context, userID int64) ([]PostInfo, error) {
	posts := []PostInfo{}
	query := `
		SELECT p.id, p.author_id, p.caption, p.image_url, p.created_at
		FROM bookmarks b
		JOIN posts p ON p.id = b.post_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC`

	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, err
	}

	return posts, nil
}
