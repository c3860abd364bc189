// internal/posts/models.go

package posts

import "time"

// UserInfo is the author summary embedded in posts and comments
type UserInfo struct {
	ID             int64   `json:"id" db:"id"`
	Username       string  `json:"username" db:"username"`
	ProfilePicture *string `json:"profilePicture" db:"profile_picture"`
}

// Post represents a published post with its engagement populated
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Caption   string    `json:"caption" db:"caption"`
	ImageURL  string    `json:"image" db:"image_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author   *UserInfo `json:"author,omitempty"`
	Likes    []int64   `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Comment represents a comment on a post
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Text      string    `json:"text" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Author *UserInfo `json:"author,omitempty"`
}

// CommentRequest is the payload for adding a comment
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// BookmarkResponse reports the new saved state after a toggle
type BookmarkResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Notification is the payload pushed to a post author on engagement
type Notification struct {
	Type        string    `json:"type"`
	UserID      int64     `json:"userId"`
	UserDetails *UserInfo `json:"userDetails"`
	PostID      int64     `json:"postId"`
	Message     string    `json:"message"`
}
