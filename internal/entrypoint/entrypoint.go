package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/auth"
	"github.com/virtualcode/readingvault/internal/config"
	"github.com/virtualcode/readingvault/internal/database"
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/database/lendings"
	"github.com/virtualcode/readingvault/internal/database/notes"
	"github.com/virtualcode/readingvault/internal/database/progress"
	"github.com/virtualcode/readingvault/internal/database/users"
	http_controllers "github.com/virtualcode/readingvault/internal/http"
	"github.com/virtualcode/readingvault/internal/scheduler"
	"github.com/virtualcode/readingvault/internal/services"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut the server down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting ReadingVault v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	progressRepo := progress.NewRepository(db.DB)
	lendingRepo := lendings.NewRepository(db.DB)
	noteRepo := notes.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)

	operations := services.NewOperations(bookRepo, bookRepo, progressRepo, progressRepo, lendingRepo, noteRepo)
	lendingService := services.NewLendingService(bookRepo, lendingRepo, cfg.Lending.DefaultPeriodDays)

	// Without a persisted secret every restart invalidates issued tokens
	if cfg.Auth.JWTSecret == "" {
		secret, err := auth.GenerateJWTSecret()
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		cfg.Auth.JWTSecret = secret
		log.Printf("Generated JWT secret (set AUTH_JWT_SECRET to persist sessions across restarts)")
	}

	authService := auth.NewService(userRepo, cfg.Auth)
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth)
	authMiddleware := auth.NewMiddleware(tokenIssuer)

	hasUsers, err := authService.HasUsers()
	if err != nil {
		log.Fatalf("Failed to query users: %v", err)
	}
	if !hasUsers {
		log.Printf("No users found. Use the create-user command or POST /api/auth/register to create one.")
	}

	overdueScheduler := scheduler.NewOverdueLendingScheduler(lendingService, cfg.Lending)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := overdueScheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start overdue lending scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Books:          bookRepo,
		Progress:       progressRepo,
		Notes:          noteRepo,
		Operations:     operations,
		Lendings:       lendingService,
		AuthService:    authService,
		TokenIssuer:    tokenIssuer,
		AuthMiddleware: authMiddleware,
		Scheduler:      overdueScheduler,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		overdueScheduler.Stop()
		schedulerCancel()
	}

	Serve(router, cfg, onShutdown)
}
