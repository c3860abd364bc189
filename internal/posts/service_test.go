// internal/posts/service_test.go

package posts

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapgram/snapgram-backend/internal/relay"
)

// fakeRepository is an in-memory Repository for service tests
type fakeRepository struct {
	nextID    int64
	posts     map[int64]*Post
	likes     map[int64]map[int64]bool
	comments  map[int64][]Comment
	bookmarks map[[2]int64]bool
	users     map[int64]*UserInfo
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		nextID:    1,
		posts:     make(map[int64]*Post),
		likes:     make(map[int64]map[int64]bool),
		comments:  make(map[int64][]Comment),
		bookmarks: make(map[[2]int64]bool),
		users:     make(map[int64]*UserInfo),
	}
}

func (r *fakeRepository) addUser(id int64, username string) {
	r.users[id] = &UserInfo{ID: id, Username: username}
}

func (r *fakeRepository) CreatePost(ctx context.Context, authorID int64, caption, imageURL string) (*Post, error) {
	post := &Post{
		ID:        r.nextID,
		AuthorID:  authorID,
		Caption:   caption,
		ImageURL:  imageURL,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.posts[post.ID] = post
	r.likes[post.ID] = make(map[int64]bool)
	return post, nil
}

func (r *fakeRepository) GetPostByID(ctx context.Context, postID int64) (*Post, error) {
	post, ok := r.posts[postID]
	if !ok {
		return nil, ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakeRepository) GetAllPosts(ctx context.Context) ([]Post, error) {
	posts := []Post{}
	for _, post := range r.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

func (r *fakeRepository) GetUserPosts(ctx context.Context, authorID int64) ([]Post, error) {
	posts := []Post{}
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, *post)
		}
	}
	return posts, nil
}

func (r *fakeRepository) DeletePost(ctx context.Context, postID int64) error {
	if _, ok := r.posts[postID]; !ok {
		return ErrPostNotFound
	}
	delete(r.posts, postID)
	delete(r.likes, postID)
	delete(r.comments, postID)
	for pair := range r.bookmarks {
		if pair[1] == postID {
			delete(r.bookmarks, pair)
		}
	}
	return nil
}

func (r *fakeRepository) AddLike(ctx context.Context, postID, userID int64) error {
	r.likes[postID][userID] = true
	return nil
}

func (r *fakeRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	delete(r.likes[postID], userID)
	return nil
}

func (r *fakeRepository) GetLikeUserIDs(ctx context.Context, postID int64) ([]int64, error) {
	ids := []int64{}
	for userID := range r.likes[postID] {
		ids = append(ids, userID)
	}
	return ids, nil
}

func (r *fakeRepository) CreateComment(ctx context.Context, postID, authorID int64, text string) (*Comment, error) {
	comment := Comment{
		ID:        r.nextID,
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	r.nextID++
	r.comments[postID] = append(r.comments[postID], comment)
	return &comment, nil
}

func (r *fakeRepository) GetComments(ctx context.Context, postID int64) ([]Comment, error) {
	return append([]Comment{}, r.comments[postID]...), nil
}

func (r *fakeRepository) IsBookmarked(ctx context.Context, userID, postID int64) (bool, error) {
	return r.bookmarks[[2]int64{userID, postID}], nil
}

func (r *fakeRepository) AddBookmark(ctx context.Context, userID, postID int64) error {
	r.bookmarks[[2]int64{userID, postID}] = true
	return nil
}

func (r *fakeRepository) RemoveBookmark(ctx context.Context, userID, postID int64) error {
	delete(r.bookmarks, [2]int64{userID, postID})
	return nil
}

func (r *fakeRepository) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	info, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return info, nil
}

// fakePusher records every push for assertions
type fakePusher struct {
	pushed []pushedEvent
}

type pushedEvent struct {
	userID int64
	event  relay.Event
}

func (p *fakePusher) SendToUser(userID int64, event relay.Event) bool {
	p.pushed = append(p.pushed, pushedEvent{userID: userID, event: event})
	return true
}

func (p *fakePusher) IsOnline(userID int64) bool {
	return false
}

// fakeUploader returns a fixed URL without touching the image bytes
type fakeUploader struct{}

func (u *fakeUploader) UploadImage(ctx context.Context, r io.Reader, folder string) (string, error) {
	io.Copy(io.Discard, r)
	return "https://cdn.example.com/" + folder + "/image.jpg", nil
}

func newTestService(t *testing.T) (*Service, *fakeRepository, *fakePusher) {
	t.Helper()

	repo := newFakeRepository()
	repo.addUser(1, "alice")
	repo.addUser(2, "bob")

	pusher := &fakePusher{}
	return NewService(repo, &fakeUploader{}, pusher), repo, pusher
}

func TestCreatePost(t *testing.T) {
	svc, _, _ := newTestService(t)

	post, err := svc.CreatePost(context.Background(), 1, "first!", strings.NewReader("img"))

	require.NoError(t, err)
	assert.Equal(t, int64(1), post.AuthorID)
	assert.Equal(t, "first!", post.Caption)
	assert.Equal(t, "https://cdn.example.com/posts/image.jpg", post.ImageURL)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
	assert.Empty(t, post.Likes)
}

func TestLikeIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	require.NoError(t, svc.LikePost(context.Background(), post.ID, 2))
	require.NoError(t, svc.LikePost(context.Background(), post.ID, 2))

	likes, err := repo.GetLikeUserIDs(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, likes)
}

func TestDislikeWithoutLike(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	// Removing a like that was never recorded succeeds and changes nothing
	require.NoError(t, svc.DislikePost(context.Background(), post.ID, 2))

	likes, err := repo.GetLikeUserIDs(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestLikeNotifiesAuthor(t *testing.T) {
	svc, repo, pusher := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	require.NoError(t, svc.LikePost(context.Background(), post.ID, 2))

	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, int64(1), pusher.pushed[0].userID)
	assert.Equal(t, relay.EventNotification, pusher.pushed[0].event.Name)
}

func TestSelfLikeDoesNotNotify(t *testing.T) {
	svc, repo, pusher := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	require.NoError(t, svc.LikePost(context.Background(), post.ID, 1))

	assert.Empty(t, pusher.pushed)
}

func TestLikeUnknownPost(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.LikePost(context.Background(), 999, 2)

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentsFlow(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	// No comments yet is a distinct condition
	_, err := svc.GetComments(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrNoComments)

	comment, err := svc.AddComment(context.Background(), post.ID, 2, "nice shot")
	require.NoError(t, err)
	assert.Equal(t, "nice shot", comment.Text)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "bob", comment.Author.Username)

	comments, err := svc.GetComments(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "nice shot", comments[0].Text)
}

func TestDeletePostByNonAuthor(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	err := svc.DeletePost(context.Background(), post.ID, 2)

	assert.ErrorIs(t, err, ErrNotPostAuthor)
	_, err = repo.GetPostByID(context.Background(), post.ID)
	assert.NoError(t, err)
}

func TestDeletePostByAuthor(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")
	repo.AddBookmark(context.Background(), 2, post.ID)

	require.NoError(t, svc.DeletePost(context.Background(), post.ID, 1))

	_, err := repo.GetPostByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
	bookmarked, _ := repo.IsBookmarked(context.Background(), 2, post.ID)
	assert.False(t, bookmarked)
}

func TestToggleBookmark(t *testing.T) {
	svc, repo, _ := newTestService(t)
	post, _ := repo.CreatePost(context.Background(), 1, "", "url")

	saved, err := svc.ToggleBookmark(context.Background(), post.ID, 2)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = svc.ToggleBookmark(context.Background(), post.ID, 2)
	require.NoError(t, err)
	assert.False(t, saved)
}
