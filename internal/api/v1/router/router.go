package router

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// legacyAPIRedirect maps the old /api prefix to /v1. 308 keeps the method,
// so redirected POSTs stay POSTs.
func legacyAPIRedirect(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/")
	http.Redirect(w, r, "/v1/"+rest, http.StatusPermanentRedirect)
}

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	// 1. Open DB connection pool
	dsn := cfg.DSN()
	// In a development environment, ensure SSL is disabled for local testing.
	// In production the connection string carries the correct SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse DB connection string")
		return nil, nil, err
	}
	poolCfg.MaxConns = 25
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection pool")
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		pool.Close()
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 3. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	subRepo := repository.NewSubscriptionRepo(pool)
	activityRepo := repository.NewActivityRepo(pool)

	userSvc := service.NewUserService(userRepo)
	profileSvc := service.NewProfileService(profileRepo)
	subSvc := service.NewSubscriptionService(subRepo, logger)
	activitySvc := service.NewActivityService(activityRepo, logger)
	googleAuth := service.NewGoogleAuthenticator(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, logger)
	assistantClient := service.NewAssistantClient(cfg.AssistantBaseURL, logger)

	sessionTTL := time.Duration(cfg.SessionDays) * 24 * time.Hour
	authHandler := handler.NewAuthHandler(googleAuth, userSvc, activitySvc, cfg.JWTSecret, sessionTTL, logger)
	userHandler := handler.NewUserHandler(userSvc, profileSvc, activitySvc, validate, logger)
	subHandler := handler.NewSubscriptionHandler(subSvc, activitySvc, validate, logger)
	assistantHandler := handler.NewAssistantHandler(assistantClient, logger)

	// 4. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)

	// 5. Create ServeMux router with the /v1 prefix
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	userHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	subHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	assistantHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	apiV1Mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// Redirect /api/* to /v1/* for backward compatibility
	mux.HandleFunc("/api/", legacyAPIRedirect)

	// 6. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), pool, nil
}
