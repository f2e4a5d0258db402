package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/muhandis-app/assistant-api/internal/api/handler"
	customMiddleware "github.com/muhandis-app/assistant-api/internal/api/middleware"
	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/muhandis-app/assistant-api/internal/chat/gemini"
	"github.com/muhandis-app/assistant-api/internal/chat/ollama"
	"github.com/muhandis-app/assistant-api/internal/chat/openai"
	"github.com/muhandis-app/assistant-api/internal/config"
	"github.com/muhandis-app/assistant-api/internal/domain"
	"github.com/muhandis-app/assistant-api/internal/repository/postgres"
	"github.com/muhandis-app/assistant-api/internal/repository/redis"
	"github.com/muhandis-app/assistant-api/internal/security"
	"github.com/muhandis-app/assistant-api/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, snapshots domain.SnapshotRepository) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize security components
	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)
	validator := security.NewRequestValidator()

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)

	// Initialize rate limiter and snapshot cache
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	snapshotCache := redis.NewSnapshotCache(redisClient)

	// Initialize chat router with providers
	chatRouter := chat.NewRouter(cfg.Chat.DefaultProvider)
	log.Info().Msgf("Initializing chat providers. Default: %s", cfg.Chat.DefaultProvider)

	if cfg.Chat.Gemini.APIKey != "" {
		chatRouter.RegisterProvider(gemini.NewProvider(cfg.Chat.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}
	if cfg.Chat.OpenAI.APIKey != "" {
		chatRouter.RegisterProvider(openai.NewProvider(cfg.Chat.OpenAI.APIKey, cfg.Chat.OpenAI.Model))
	}
	if cfg.Chat.Ollama.Host != "" {
		log.Info().Str("host", cfg.Chat.Ollama.Host).Msg("Registering Ollama provider")
		chatRouter.RegisterProvider(ollama.NewProvider(cfg.Chat.Ollama.Host, cfg.Chat.Ollama.DefaultModel))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	assistantService := service.NewAssistantService(
		userRepo,
		snapshots,
		snapshotCache,
		chatRouter,
		cfg.Chat.Timeout,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	assistantHandler := handler.NewAssistantHandler(assistantService, validator)

	// Auth middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)

			// Service-mode catalog and chat providers
			r.Get("/modes", handler.ListModes)
			r.Get("/modes/{modeID}", handler.GetMode)
			r.Get("/chat-providers", handler.ListChatProviders(chatRouter))

			// Conversation state
			r.Route("/assistant", func(r chi.Router) {
				r.Get("/state", assistantHandler.GetState)
				r.Delete("/state", assistantHandler.DeleteState)

				r.Post("/mode", assistantHandler.SwitchMode)

				r.Post("/messages", assistantHandler.Send)
				r.Post("/messages/stop", assistantHandler.StopGeneration)

				r.Route("/threads", func(r chi.Router) {
					r.Get("/", assistantHandler.ListThreads)
					r.Post("/", assistantHandler.CreateThread)

					r.Route("/{threadID}", func(r chi.Router) {
						r.Get("/", assistantHandler.GetThread)
						r.Patch("/", assistantHandler.RenameThread)
						r.Delete("/", assistantHandler.DeleteThread)
						r.Post("/activate", assistantHandler.ActivateThread)
						r.Post("/star", assistantHandler.StarThread)
						r.Post("/archive", assistantHandler.ArchiveThread)
						r.Get("/messages", assistantHandler.ListMessages)
					})
				})

				r.Route("/composer", func(r chi.Router) {
					r.Get("/", assistantHandler.GetComposer)
					r.Delete("/", assistantHandler.ClearComposer)
					r.Put("/text", assistantHandler.SetComposerText)
					r.Post("/prompt", assistantHandler.SeedPrompt)
					r.Post("/attachments", assistantHandler.AttachFile)
					r.Delete("/attachments/{name}", assistantHandler.RemoveAttachment)
					r.Post("/voice/start", assistantHandler.StartVoice)
					r.Post("/voice/stop", assistantHandler.StopVoice)
					r.Post("/voice/transcript", assistantHandler.AppendTranscript)
					r.Put("/language", assistantHandler.SetLanguage)
					r.Post("/translate/toggle", assistantHandler.ToggleTranslate)
				})

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", assistantHandler.GetSettings)
					r.Post("/rtl/toggle", assistantHandler.ToggleRTL)
					r.Post("/hijri/toggle", assistantHandler.ToggleHijri)
					r.Post("/voice/toggle", assistantHandler.ToggleVoice)
					r.Post("/auto-translate/toggle", assistantHandler.ToggleAutoTranslate)
					r.Put("/temperature", assistantHandler.SetTemperature)
				})
			})
		})
	})

	return r
}
