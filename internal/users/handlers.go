// internal/users/handlers.go

package users

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/snapgram/snapgram-backend/internal/common/utils"
)

// Handler holds dependencies for user endpoints
type Handler struct {
	service       *Service
	maxUploadSize int64
	secureCookies bool
}

// NewHandler creates a new users handler
func NewHandler(service *Service, maxUploadSize int64, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		maxUploadSize: maxUploadSize,
		secureCookies: secureCookies,
	}
}

// Register handles account creation
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			utils.ErrorResponse(w, "Email already registered", http.StatusConflict)
		case errors.Is(err, ErrUsernameTaken):
			utils.ErrorResponse(w, "Username already taken", http.StatusConflict)
		default:
			utils.ErrorResponse(w, "Failed to create account", http.StatusInternalServerError)
		}
		return
	}

	utils.MessageResponse(w, "Account created successfully.", http.StatusCreated)
}

// Login verifies credentials and sets the session cookie
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.ErrorResponse(w, "Incorrect email or password", http.StatusUnauthorized)
			return
		}
		utils.ErrorResponse(w, "Failed to login", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.service.TokenExpiry()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	utils.SuccessResponse(w, LoginResponse{
		User:    user,
		Message: "Welcome back " + user.Username,
	}, http.StatusOK)
}

// Logout clears the session cookie and revokes the token
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			utils.ErrorResponse(w, "Failed to logout", http.StatusInternalServerError)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	utils.MessageResponse(w, "Logged out successfully.", http.StatusOK)
}

// GetProfile returns a user's profile with posts and bookmarks populated
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
			return
		}
		utils.ErrorResponse(w, "Failed to get profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

// EditProfile applies the caller's profile mutations
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.ErrorResponse(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	var req EditProfileRequest
	if values, ok := r.MultipartForm.Value["bio"]; ok && len(values) > 0 {
		req.Bio = &values[0]
	}
	if values, ok := r.MultipartForm.Value["gender"]; ok && len(values) > 0 {
		req.Gender = &values[0]
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	var picture io.Reader
	if file, _, err := r.FormFile("profilePicture"); err == nil {
		defer file.Close()
		picture = file
	}

	profile, err := h.service.EditProfile(r.Context(), userID, &req, picture)
	if err != nil {
		utils.ErrorResponse(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, profile, http.StatusOK)
}

// GetSuggestedUsers lists users excluding the caller
func (h *Handler) GetSuggestedUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suggestions, err := h.service.SuggestedUsers(r.Context(), userID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get suggested users", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, suggestions, http.StatusOK)
}

// FollowOrUnfollow toggles the follow edge toward the target user
func (h *Handler) FollowOrUnfollow(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	targetID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	following, err := h.service.FollowOrUnfollow(r.Context(), userID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			utils.ErrorResponse(w, "You cannot follow yourself", http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to update follow state", http.StatusInternalServerError)
		}
		return
	}

	message := "Unfollowed successfully"
	if following {
		message = "Followed successfully"
	}

	utils.SuccessResponse(w, FollowResponse{
		Following: following,
		Message:   message,
	}, http.StatusOK)
}
