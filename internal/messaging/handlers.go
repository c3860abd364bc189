// internal/messaging/handlers.go

package messaging

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/snapgram/snapgram-backend/internal/common/utils"
	"github.com/snapgram/snapgram-backend/internal/users"
)

// Handler holds dependencies for messaging endpoints
type Handler struct {
	service *Service
}

// NewHandler creates a new messaging handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SendMessage sends a direct message to the user in the path
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	receiverID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	message, err := h.service.SendMessage(r.Context(), senderID, receiverID, req.TextMessage)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfMessage):
			utils.ErrorResponse(w, "You cannot message yourself", http.StatusBadRequest)
		case errors.Is(err, ErrReceiverNotFound):
			utils.ErrorResponse(w, "User not found", http.StatusNotFound)
		default:
			utils.ErrorResponse(w, "Failed to send message", http.StatusInternalServerError)
		}
		return
	}

	utils.SuccessResponse(w, message, http.StatusCreated)
}

// GetMessages returns the history between the caller and the user in
// the path, oldest first.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := users.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ErrorResponse(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.ErrorResponse(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	messages, err := h.service.GetMessages(r.Context(), userID, otherID)
	if err != nil {
		utils.ErrorResponse(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}

	utils.SuccessResponse(w, messages, http.StatusOK)
}
