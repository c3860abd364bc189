// internal/posts/repository.go

package posts

import "context"

// Repository defines post storage operations
type Repository interface {
	CreatePost(ctx context.Context, authorID int64, caption, imageURL string) (*Post, error)
	GetPostByID(ctx context.Context, postID int64) (*Post, error)
	GetAllPosts(ctx context.Context) ([]Post, error)
	GetUserPosts(ctx context.Context, authorID int64) ([]Post, error)
	DeletePost(ctx context.Context, postID int64) error

	AddLike(ctx context.Context, postID, userID int64) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	GetLikeUserIDs(ctx context.Context, postID int64) ([]int64, error)

	CreateComment(ctx context.Context, postID, authorID int64, text string) (*Comment, error)
	GetComments(ctx context.Context, postID int64) ([]Comment, error)

	IsBookmarked(ctx context.Context, userID, postID int64) (bool, error)
	AddBookmark(ctx context.Context, userID, postID int64) error
	RemoveBookmark(ctx context.Context, userID, postID int64) error

	GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error)
}
