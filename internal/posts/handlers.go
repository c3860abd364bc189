// internal/posts/handlers.go

package posts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/snapgram/snapgram-backend/internal/common/utils"
	"github.com/snapgram/snapgram-backend/internal/users"
)

// Handler holds dependencies for post endpoints
type Handler struct {
	service       *Service
	maxUploadSize int64
}

// NewHandler creates a new posts handler
func NewHandler(service *Service, maxUploadSize int64) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// AddPost publishes a new post from a multipart form
func (h *Handler) AddPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.ErrorResponse(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	image, _, err := r.FormFile("image")
	if err != nil {
		utils.ErrorResponse(w, "Image required", http.StatusBadRequest)
		return
	}
	defer image.Close()

	caption := r.FormValue("caption")

	post, err := h.service.CreatePost(r.Context(), userID, caption, image)
	if err != nil {
		utils.ErrorResponse(w, "Failed to create post", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, post, http.StatusCreated)
}

// GetAllPosts returns the global feed
func (h *Handler) GetAllPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.GetAllPosts(r.Context())
	if err != nil {
		utils.ErrorResponse(w, "Failed to get posts", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, posts, http.StatusOK)
}

// GetUserPosts returns the caller's own posts
func (h *Handler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	posts, err := h.service.GetUserPosts(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get posts", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, posts, http.StatusOK)
}

// LikePost records a like on a post
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, h.service.LikePost, "Post liked")
}

// DislikePost removes a like from a post
func (h *Handler) DislikePost(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, h.service.DislikePost, "Post disliked")
}

func (h *Handler) engage(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, int64) error, message string) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), postID, userID); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.ErrorResponse(w, "Post not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to update post", http.StatusInternalServerError)
		return
	}

	utils.MessageResponse(w, message, http.StatusOK)
}

// AddComment appends a comment to a post
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(r.Context(), postID, userID, req.Text)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.ErrorResponse(w, "Post not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to add comment", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, comment, http.StatusCreated)
}

// GetComments lists a post's comments
func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := h.service.GetComments(r.Context(), postID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			utils.ErrorResponse(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, ErrNoComments):
			utils.ErrorResponse(w, "No comments on this post", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to get comments", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, comments, http.StatusOK)
}

// DeletePost removes the caller's own post
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, userID); err != nil {
		switch {
		case errors.Is(err, ErrPostNotFound):
			utils.ErrorResponse(w, "Post not found", http.StatusNotFound)
		case errors.Is(err, ErrNotPostAuthor):
			utils.ErrorResponse(w, "You can only delete your own posts", http.StatusForbidden)
		default:
			utils.ErrorResponse(w, "Failed to delete post", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Post deleted successfully.", http.StatusOK)
}

// ToggleBookmark flips the caller's bookmark on a post
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	saved, err := h.service.ToggleBookmark(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			utils.ErrorResponse(w, "Post not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to update bookmark", http.StatusInternalServerError)
		return
	}

	resp := BookmarkResponse{Type: "unsaved", Message: "Post removed from bookmarks"}
	if saved {
		resp = BookmarkResponse{Type: "saved", Message: "Post bookmarked"}
	}

	utils.SuccessResponse(w, resp, http.StatusOK)
}
