// internal/posts/postgres.go

package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a PostgreSQL posts repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreatePost(ctx context.Context, authorID int64, caption, imageURL string) (*Post, error) {
	query := `
		INSERT INTO posts (author_id, caption, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, author_id, caption, image_url, created_at`

	var post Post
	if err := r.db.GetContext(ctx, &post, query, authorID, caption, imageURL); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &post, nil
}

func (r *postgresRepository) GetPostByID(ctx context.Context, postID int64) (*Post, error) {
	query := `
		SELECT id, author_id, caption, image_url, created_at
		FROM posts
		WHERE id = $1`

	var post Post
	if err := r.db.GetContext(ctx, &post, query, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

func (r *postgresRepository) GetAllPosts(ctx context.Context) ([]Post, error) {
	query := `
		SELECT id, author_id, caption, image_url, created_at
		FROM posts
		ORDER BY created_at DESC`

	posts := []Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	return posts, nil
}

func (r *postgresRepository) GetUserPosts(ctx context.Context, authorID int64) ([]Post, error) {
	query := `
		SELECT id, author_id, caption, image_url, created_at
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC`

	posts := []Post{}
	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		return nil, fmt.Errorf("failed to get user posts: %w", err)
	}

	return posts, nil
}

// DeletePost removes a post and its dependent rows in one transaction
func (r *postgresRepository) DeletePost(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM comments WHERE post_id = $1`,
		`DELETE FROM post_likes WHERE post_id = $1`,
		`DELETE FROM bookmarks WHERE post_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, postID); err != nil {
			return fmt.Errorf("failed to delete post dependents: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return ErrPostNotFound
	}

	return tx.Commit()
}

func (r *postgresRepository) AddLike(ctx context.Context, postID, userID int64) error {
	// Insert-if-absent keeps the operation idempotent under retries
	query := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}

	return nil
}

func (r *postgresRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetLikeUserIDs(ctx context.Context, postID int64) ([]int64, error) {
	query := `SELECT user_id FROM post_likes WHERE post_id = $1 ORDER BY user_id`

	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get likes: %w", err)
	}

	return ids, nil
}

func (r *postgresRepository) CreateComment(ctx context.Context, postID, authorID int64, text string) (*Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author_id, body, created_at`

	var comment Comment
	if err := r.db.GetContext(ctx, &comment, query, postID, authorID, text); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

func (r *postgresRepository) GetComments(ctx context.Context, postID int64) ([]Comment, error) {
	query := `
		SELECT id, post_id, author_id, body, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC`

	comments := []Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return comments, nil
}

func (r *postgresRepository) IsBookmarked(ctx context.Context, userID, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookmarks WHERE user_id = $1 AND post_id = $2)`

	var bookmarked bool
	if err := r.db.GetContext(ctx, &bookmarked, query, userID, postID); err != nil {
		return false, fmt.Errorf("failed to check bookmark: %w", err)
	}

	return bookmarked, nil
}

func (r *postgresRepository) AddBookmark(ctx context.Context, userID, postID int64) error {
	query := `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}

	return nil
}

func (r *postgresRepository) RemoveBookmark(ctx context.Context, userID, postID int64) error {
	query := `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return fmt.Errorf("failed to remove bookmark: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	query := `SELECT id, username, profile_picture FROM users WHERE id = $1`

	var info UserInfo
	if err := r.db.GetContext(ctx, &info, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &info, nil
}
