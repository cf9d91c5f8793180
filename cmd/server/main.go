package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtualagent-backend/internal/api"
	"virtualagent-backend/internal/config"
	"virtualagent-backend/internal/crypto"
	"virtualagent-backend/internal/handlers"
	"virtualagent-backend/internal/integrations/email"
	"virtualagent-backend/internal/integrations/notion"
	"virtualagent-backend/internal/integrations/slackalert"
	"virtualagent-backend/internal/openai"
	"virtualagent-backend/internal/services"
	"virtualagent-backend/internal/storage"
	"virtualagent-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	log.Println("Starting Virtual Agent Backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	// 2. Run Migrations & Initialize Database Connection Pool
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer dbCancel()

	if err := postgres.Migrate(dbCtx, cfg.DatabaseURL); err != nil {
		log.Fatalf("FATAL: Database migration failed: %v", err)
	}
	log.Println("Database migrations applied.")

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Unable to create database connection pool: %v\n", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		log.Fatalf("FATAL: Unable to ping database: %v\n", err)
	}
	log.Println("Database connection pool established and pinged successfully.")

	// 3. Initialize Dependencies (Store, Services, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)
	log.Println("Postgres store initialized.")

	aead, err := crypto.NewAESGCM(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("FATAL: Failed to create AES-GCM cipher: %v", err)
	}
	log.Println("AES-GCM cipher initialized.")

	providerClient := openai.NewClient(cfg.OpenAIBaseURL)
	log.Println("Provider client initialized.")

	// --- Initialize Services ---
	authService := services.NewAuthService(pgStore, cfg)
	if err := authService.EnsureSeedAdmin(dbCtx); err != nil {
		log.Fatalf("FATAL: Failed to seed admin user: %v", err)
	}
	agentConfigService := services.NewAgentConfigService(pgStore, aead, cfg.OpenAIAPIKey)
	brandService := services.NewBrandService(pgStore)
	advisorService := services.NewAdvisorService(pgStore)
	knowledgeService := services.NewKnowledgeService(pgStore, notion.NewImporter())
	rssService := services.NewRSSService(pgStore)
	toolService := services.NewAPIToolService(pgStore)
	pronunciationService := services.NewPronunciationService(pgStore)
	conversationService := services.NewConversationService(pgStore)
	promptService := services.NewPromptService(pgStore)

	var notifier services.AlertNotifier
	if cfg.SlackBotToken != "" && cfg.SlackChannelID != "" {
		notifier = slackalert.NewNotifier(cfg.SlackBotToken, cfg.SlackChannelID)
		log.Println("Slack escalation notifier initialized.")
	}
	emailSender := email.NewResendSender(cfg.ResendAPIKey, cfg.EscalationFrom)
	escalationService := services.NewEscalationService(pgStore, emailSender, notifier, cfg.CallWindowSecs)
	log.Println("Services initialized.")

	var uploader handlers.FileUploader
	if cfg.UploadsBucket != "" {
		s3Uploader, err := storage.NewUploader(dbCtx, cfg.UploadsBucket, cfg.UploadsRegion, cfg.UploadsPublicURL)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize uploads bucket: %v", err)
		}
		uploader = s3Uploader
		log.Printf("Uploads bucket %s initialized.", cfg.UploadsBucket)
	} else {
		log.Println("WARN: UPLOADS_BUCKET not set, file uploads disabled.")
	}

	// --- Initialize Handlers ---
	routerDeps := api.RouterDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		ConfigHandler:       handlers.NewConfigHandler(agentConfigService, brandService),
		AdvisorHandler:      handlers.NewAdvisorHandler(advisorService),
		KnowledgeHandler:    handlers.NewKnowledgeHandler(knowledgeService),
		SourcesHandler:      handlers.NewSourcesHandler(rssService, toolService, pronunciationService),
		ChatHandler:         handlers.NewChatHandler(providerClient, agentConfigService, promptService),
		SpeechHandler:       handlers.NewSpeechHandler(providerClient, agentConfigService, pronunciationService),
		TranscribeHandler:   handlers.NewTranscribeHandler(providerClient, agentConfigService),
		EscalationHandler:   handlers.NewEscalationHandler(escalationService),
		ConversationHandler: handlers.NewConversationHandler(conversationService),
		UploadHandler:       handlers.NewUploadHandler(uploader),
		Config:              cfg,
	}
	router := api.NewRouter(routerDeps)
	log.Println("HTTP router configured.")

	// 4. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// Long write timeout: speech synthesis responses stream megabytes
		// of MP3 back to slow mobile connections.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting and listening on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: Could not listen on %s: %v\n", cfg.HTTPPort, err)
		}
		log.Println("Server listener routine stopped.")
	}()

	<-stopChan
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: Server graceful shutdown failed: %v", err)
		log.Fatal("Forcing shutdown due to error.")
	}

	log.Println("Server shutdown complete.")
}
