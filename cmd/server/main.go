package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edusite/internal/auth"
	"edusite/internal/cache"
	"edusite/internal/config"
	"edusite/internal/data"
	"edusite/internal/handler"
	"edusite/internal/logger"
	"edusite/internal/mail"
	"edusite/internal/middleware"
	"edusite/internal/service"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Pre-flight Checks ---
	if cfg.Session.SecretKey == "" || cfg.Session.SecretKey == "CHANGE_ME_IN_PRODUCTION_SECRET!!" {
		log.Fatal(errors.New("session secret key not set"), "Please set a secure EDUSITE_SESSION_SECRET_KEY environment variable.")
	}

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	authenticator, err := auth.NewAuthenticator(&cfg.OIDC)
	if err != nil {
		log.Fatal(err, "Failed to initialize authenticator")
	}
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, &cfg.OIDC, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- Cache Initialization ---
	log.Info("Initializing SQLite query cache...")
	queryCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer queryCache.Close()
	log.Info("Cache initialized.")

	// --- Outbound Mail ---
	notifier := mail.NewSMTPNotifier(cfg.SMTP, log)

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	canonical := cfg.Locale.Canonical
	programRepository := data.NewProgramRepository(db)
	blogRepository := data.NewBlogRepository(db)
	showcaseRepository := data.NewShowcaseRepository(db)
	lookupRepository := data.NewLookupRepository(db)
	contactRepository := data.NewContactRepository(db)

	programService := service.NewProgramService(programRepository, lookupRepository, queryCache, log, canonical)
	blogService := service.NewBlogService(blogRepository, queryCache, log, canonical)
	showcaseService := service.NewShowcaseService(showcaseRepository, queryCache, log, canonical)
	lookupService := service.NewLookupService(lookupRepository, queryCache, log, canonical)
	contactService := service.NewContactService(contactRepository, notifier, log)

	handlers := handler.Handlers{
		Programs: handler.NewProgramHandler(programService, canonical),
		Blogs:    handler.NewBlogHandler(blogService, canonical),
		Showcase: handler.NewShowcaseHandler(showcaseService, canonical),
		Lookups:  handler.NewLookupHandler(lookupService, canonical),
		Contact:  handler.NewContactHandler(contactService),
		Cache:    handler.NewCacheHandler(queryCache),
		Health:   handler.NewHealthHandler(db),
		Auth:     handler.NewAuthHandler(authenticator, sessionManager, &cfg.OIDC),
	}

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)

	// --- Router Setup ---
	// The router is the central hub that directs incoming requests to the correct handlers.
	router := handler.NewRouter(handlers, sessionManager, authzMiddleware, canonical, log)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
