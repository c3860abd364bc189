// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snapgram/snapgram-backend/internal/common/database"
	"github.com/snapgram/snapgram-backend/internal/config"
	"github.com/snapgram/snapgram-backend/internal/media"
	"github.com/snapgram/snapgram-backend/internal/messaging"
	"github.com/snapgram/snapgram-backend/internal/notification"
	"github.com/snapgram/snapgram-backend/internal/posts"
	"github.com/snapgram/snapgram-backend/internal/relay"
	"github.com/snapgram/snapgram-backend/internal/users"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Snapgram API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed: ", err)
	}
	log.Println("✅ Configuration loaded and valid")

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL: ", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Run database migrations
	log.Println("\n🔨 Step 4: Running database migrations...")
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 5. Connect to Redis (optional; logout revocation degrades without it)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), session revocation disabled", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("✅ Connected to Redis successfully")
	}

	// 6. Initialize media storage
	log.Println("\n🖼️  Step 6: Initializing media storage...")
	mediaService, err := media.NewService(cfg)
	if err != nil {
		log.Fatal("❌ Failed to initialize media storage: ", err)
	}
	if cfg.UseS3 {
		log.Println("   ✅ Using S3 for uploads")
	} else {
		log.Println("   ✅ Using local storage for uploads")
	}

	// 7. Initialize email provider
	log.Println("\n📧 Step 7: Initializing email provider...")
	emailProvider := notification.NewProviderFromConfig(cfg)
	mailer := notification.NewMailer(emailProvider)
	log.Printf("   ✅ Email provider: %s", cfg.EmailProvider)

	// 8. Start the presence relay
	log.Println("\n🔌 Step 8: Starting presence relay...")
	hub := relay.NewHub()
	log.Println("✅ Relay hub ready")

	// 9. Initialize Users module
	log.Println("\n👤 Step 9: Initializing Users module...")
	usersRepo := users.NewPostgresRepository(db)
	usersService := users.NewService(usersRepo, redisClient, mediaService, mailer, cfg)
	usersHandler := users.NewHandler(usersService, cfg.MaxUploadSize, cfg.IsProduction())
	authMiddleware := users.NewMiddleware(usersService)
	log.Println("✅ Users module initialized")

	// 10. Initialize Posts module
	log.Println("\n📝 Step 10: Initializing Posts module...")
	postsRepo := posts.NewPostgresRepository(db)
	postsService := posts.NewService(postsRepo, mediaService, hub)
	postsHandler := posts.NewHandler(postsService, cfg.MaxUploadSize)
	log.Println("✅ Posts module initialized")

	// 11. Initialize Messaging module
	log.Println("\n💬 Step 11: Initializing Messaging module...")
	messagingRepo := messaging.NewPostgresRepository(db)
	messagingService := messaging.NewService(messagingRepo, hub)
	messagingHandler := messaging.NewHandler(messagingService)
	log.Println("✅ Messaging module initialized")

	// 12. Setup routes
	log.Println("\n🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	if !cfg.UseS3 {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/",
				http.FileServer(http.Dir(cfg.LocalUploadDir))))
		log.Println("   ✅ Static file server configured")
	}

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	users.RegisterRoutes(router, usersHandler, authMiddleware)
	log.Println("   ✅ Users routes registered")

	posts.RegisterRoutes(router, postsHandler, authMiddleware)
	log.Println("   ✅ Posts routes registered")

	messaging.RegisterRoutes(router, messagingHandler, authMiddleware)
	log.Println("   ✅ Messaging routes registered")

	relay.RegisterRoutes(router, relay.NewHandler(hub), authMiddleware.Authenticate)
	log.Println("   ✅ Relay routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	log.Println("   - Shutting down relay hub...")
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown: ", err)
	}

	log.Println("✅ Server exited gracefully")
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.RequestURI, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
