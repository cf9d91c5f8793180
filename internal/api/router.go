package api

import (
	"log"
	"net/http"
	"time"

	"virtualagent-backend/internal/config"
	"virtualagent-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ConfigHandler       *handlers.ConfigHandler
	AdvisorHandler      *handlers.AdvisorHandler
	KnowledgeHandler    *handlers.KnowledgeHandler
	SourcesHandler      *handlers.SourcesHandler
	ChatHandler         *handlers.ChatHandler
	SpeechHandler       *handlers.SpeechHandler
	TranscribeHandler   *handlers.TranscribeHandler
	EscalationHandler   *handlers.EscalationHandler
	ConversationHandler *handlers.ConversationHandler
	UploadHandler       *handlers.UploadHandler
	Config              *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
// /api/* is the unauthenticated widget surface; /v1/* (past login) is the
// JWT-protected admin surface.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "https://*.vercel.app"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// --- Widget Surface (No JWT) ---
	r.Route("/api", func(r chi.Router) {
		if deps.ChatHandler != nil {
			r.Post("/chat", deps.ChatHandler.HandleChat)
		}
		if deps.SpeechHandler != nil {
			r.Post("/speech", deps.SpeechHandler.HandleSpeech)
		}
		if deps.TranscribeHandler != nil {
			r.Post("/transcribe", deps.TranscribeHandler.HandleTranscribe)
		}
		if deps.EscalationHandler != nil {
			r.Post("/escalate", deps.EscalationHandler.HandleEscalate)
		}
		if deps.ConversationHandler != nil {
			r.Post("/conversations", deps.ConversationHandler.HandleLogConversation)
		}
		if deps.ConfigHandler != nil {
			r.Get("/config", deps.ConfigHandler.HandleGetPublicConfig)
		}
		if deps.AdvisorHandler != nil {
			r.Get("/advisors", deps.AdvisorHandler.HandleListAdvisors)
		}
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Admin Surface (JWT Required) ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

		if deps.ConfigHandler != nil {
			r.Route("/config", func(r chi.Router) {
				r.Get("/agent", deps.ConfigHandler.HandleGetAgentConfig)
				r.Patch("/agent", deps.ConfigHandler.HandleUpdateAgentConfig)
				r.Get("/brand", deps.ConfigHandler.HandleGetBrandConfig)
				r.Patch("/brand", deps.ConfigHandler.HandleUpdateBrandConfig)
			})
		} else {
			log.Println("WARN: ConfigHandler dependency is nil, skipping /v1/config routes.")
		}

		if deps.AdvisorHandler != nil {
			r.Route("/advisors", func(r chi.Router) {
				r.Post("/", deps.AdvisorHandler.HandleCreateAdvisor)
				r.Get("/", deps.AdvisorHandler.HandleListAdvisors)
				r.Get("/{advisorID}", deps.AdvisorHandler.HandleGetAdvisor)
				r.Patch("/{advisorID}", deps.AdvisorHandler.HandleUpdateAdvisor)
				r.Delete("/{advisorID}", deps.AdvisorHandler.HandleDeleteAdvisor)
			})
		} else {
			log.Println("WARN: AdvisorHandler dependency is nil, skipping /v1/advisors routes.")
		}

		if deps.KnowledgeHandler != nil {
			r.Route("/knowledge", func(r chi.Router) {
				r.Post("/", deps.KnowledgeHandler.HandleCreateItem)
				r.Get("/", deps.KnowledgeHandler.HandleListItems)
				r.Get("/{itemID}", deps.KnowledgeHandler.HandleGetItem)
				r.Delete("/{itemID}", deps.KnowledgeHandler.HandleDeleteItem)
				r.Post("/import/notion", deps.KnowledgeHandler.HandleImportNotion)
			})
		} else {
			log.Println("WARN: KnowledgeHandler dependency is nil, skipping /v1/knowledge routes.")
		}

		if deps.SourcesHandler != nil {
			r.Route("/rss-feeds", func(r chi.Router) {
				r.Post("/", deps.SourcesHandler.HandleCreateFeed)
				r.Get("/", deps.SourcesHandler.HandleListFeeds)
				r.Delete("/{feedID}", deps.SourcesHandler.HandleDeleteFeed)
			})
			r.Route("/api-tools", func(r chi.Router) {
				r.Post("/", deps.SourcesHandler.HandleCreateTool)
				r.Get("/", deps.SourcesHandler.HandleListTools)
				r.Delete("/{toolID}", deps.SourcesHandler.HandleDeleteTool)
			})
			r.Route("/pronunciations", func(r chi.Router) {
				r.Post("/", deps.SourcesHandler.HandleCreatePronunciation)
				r.Get("/", deps.SourcesHandler.HandleListPronunciations)
				r.Delete("/{pronunciationID}", deps.SourcesHandler.HandleDeletePronunciation)
			})
		} else {
			log.Println("WARN: SourcesHandler dependency is nil, skipping source routes.")
		}

		if deps.ConversationHandler != nil {
			r.Get("/conversations", deps.ConversationHandler.HandleListConversations)
		}

		if deps.UploadHandler != nil {
			r.Post("/uploads", deps.UploadHandler.HandleUpload)
		}
	})

	return r
}
