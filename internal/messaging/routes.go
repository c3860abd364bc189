// internal/messaging/routes.go

package messaging

import (
	"github.com/gorilla/mux"

	"github.com/snapgram/snapgram-backend/internal/users"
)

// RegisterRoutes registers all messaging routes; every route requires auth
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *users.Middleware) {
	api := router.PathPrefix("/api/v1/message").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/send/{id:[0-9]+}", handler.SendMessage).Methods("POST")
	api.HandleFunc("/all/{id:[0-9]+}", handler.GetMessages).Methods("GET")
}
