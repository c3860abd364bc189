// internal/posts/routes.go

package posts

import (
	"github.com/gorilla/mux"

	"github.com/snapgram/snapgram-backend/internal/users"
)

// RegisterRoutes registers all post routes; every route requires auth
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *users.Middleware) {
	api := router.PathPrefix("/api/v1/post").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/addpost", handler.AddPost).Methods("POST")
	api.HandleFunc("/all", handler.GetAllPosts).Methods("GET")
	api.HandleFunc("/userpost/all", handler.GetUserPosts).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}/like", handler.LikePost).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}/dislike", handler.DislikePost).Methods("GET")
	api.HandleFunc("/{id:[0-9]+}/comment", handler.AddComment).Methods("POST")
	api.HandleFunc("/{id:[0-9]+}/comment/all", handler.GetComments).Methods("GET")
	api.HandleFunc("/delete/{id:[0-9]+}", handler.DeletePost).Methods("DELETE")
	api.HandleFunc("/{id:[0-9]+}/bookmark", handler.ToggleBookmark).Methods("GET")
}
