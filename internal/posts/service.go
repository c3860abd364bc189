// internal/posts/service.go

package posts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/snapgram/snapgram-backend/internal/relay"
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrNotPostAuthor = errors.New("not the post author")
	ErrNoComments    = errors.New("no comments on this post")
)

// MediaUploader stores an image and returns its durable URL
type MediaUploader interface {
	UploadImage(ctx context.Context, r io.Reader, folder string) (string, error)
}

// Service implements post business logic
type Service struct {
	repo     Repository
	uploader MediaUploader
	pusher   relay.Pusher
}

// NewService creates a new posts service
func NewService(repo Repository, uploader MediaUploader, pusher relay.Pusher) *Service {
	return &Service{
		repo:     repo,
		uploader: uploader,
		pusher:   pusher,
	}
}

// CreatePost stores the image and publishes the post
func (s *Service) CreatePost(ctx context.Context, authorID int64, caption string, image io.Reader) (*Post, error) {
	imageURL, err := s.uploader.UploadImage(ctx, image, "posts")
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	post, err := s.repo.CreatePost(ctx, authorID, caption, imageURL)
	if err != nil {
		return nil, err
	}

	return s.populate(ctx, post)
}

// GetAllPosts returns every post, newest first, with engagement populated
func (s *Service) GetAllPosts(ctx context.Context) ([]Post, error) {
	posts, err := s.repo.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	return s.populateAll(ctx, posts)
}

// GetUserPosts returns the caller's posts, newest first
func (s *Service) GetUserPosts(ctx context.Context, authorID int64) ([]Post, error) {
	posts, err := s.repo.GetUserPosts(ctx, authorID)
	if err != nil {
		return nil, err
	}

	return s.populateAll(ctx, posts)
}

// LikePost records a like and notifies the post author
func (s *Service) LikePost(ctx context.Context, postID, userID int64) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.repo.AddLike(ctx, postID, userID); err != nil {
		return err
	}

	s.notifyAuthor(ctx, post, userID, "like", "Your post was liked")
	return nil
}

// DislikePost removes a like and notifies the post author
func (s *Service) DislikePost(ctx context.Context, postID, userID int64) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.repo.RemoveLike(ctx, postID, userID); err != nil {
		return err
	}

	s.notifyAuthor(ctx, post, userID, "dislike", "Your post was disliked")
	return nil
}

// AddComment appends a comment with its author populated
func (s *Service) AddComment(ctx context.Context, postID, authorID int64, text string) (*Comment, error) {
	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.repo.CreateComment(ctx, postID, authorID, text)
	if err != nil {
		return nil, err
	}

	author, err := s.repo.GetUserInfo(ctx, authorID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	return comment, nil
}

// GetComments lists a post's comments oldest first
func (s *Service) GetComments(ctx context.Context, postID int64) ([]Comment, error) {
	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.repo.GetComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, ErrNoComments
	}

	for i := range comments {
		author, err := s.repo.GetUserInfo(ctx, comments[i].AuthorID)
		if err != nil {
			continue
		}
		comments[i].Author = author
	}

	return comments, nil
}

// DeletePost removes a post if the caller authored it
func (s *Service) DeletePost(ctx context.Context, postID, userID int64) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	return s.repo.DeletePost(ctx, postID)
}

// ToggleBookmark flips the caller's bookmark on a post, returning the
// new saved state.
func (s *Service) ToggleBookmark(ctx context.Context, postID, userID int64) (bool, error) {
	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return false, err
	}

	bookmarked, err := s.repo.IsBookmarked(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if bookmarked {
		if err := s.repo.RemoveBookmark(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := s.repo.AddBookmark(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

// notifyAuthor pushes an engagement notification unless the actor is
// the author. Delivery is best-effort; an offline author misses it.
func (s *Service) notifyAuthor(ctx context.Context, post *Post, actorID int64, kind, message string) {
	if s.pusher == nil || post.AuthorID == actorID {
		return
	}

	actor, err := s.repo.GetUserInfo(ctx, actorID)
	if err != nil {
		log.Printf("failed to load actor %d for notification: %v", actorID, err)
		return
	}

	s.pusher.SendToUser(post.AuthorID, relay.NewEvent(relay.EventNotification, Notification{
		Type:        kind,
		UserID:      actorID,
		UserDetails: actor,
		PostID:      post.ID,
		Message:     message,
	}))
}

func (s *Service) populate(ctx context.Context, post *Post) (*Post, error) {
	author, err := s.repo.GetUserInfo(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	post.Author = author

	likes, err := s.repo.GetLikeUserIDs(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Likes = likes

	comments, err := s.repo.GetComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Comments = comments

	return post, nil
}

func (s *Service) populateAll(ctx context.Context, posts []Post) ([]Post, error) {
	for i := range posts {
		if _, err := s.populate(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}
