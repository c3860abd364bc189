// internal/users/routes.go

package users

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all user routes
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *Middleware) {
	api := router.PathPrefix("/api/v1/users").Subrouter()

	// Public routes
	api.HandleFunc("/register", handler.Register).Methods("POST")
	api.HandleFunc("/login", handler.Login).Methods("POST")
	api.HandleFunc("/logout", handler.Logout).Methods("GET")

	// Protected routes
	protected := router.PathPrefix("/api/v1/users").Subrouter()
	protected.Use(authMiddleware.Authenticate)
	protected.HandleFunc("/{id:[0-9]+}/profile", handler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile/edit", handler.EditProfile).Methods("POST")
	protected.HandleFunc("/suggested", handler.GetSuggestedUsers).Methods("GET")
	protected.HandleFunc("/followorunfollow/{id:[0-9]+}", handler.FollowOrUnfollow).Methods("POST")
}
