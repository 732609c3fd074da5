package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	mcpgate "github.com/relaymesh/mcpgate"
	echoapi "github.com/relaymesh/mcpgate/api/echo"
	"github.com/relaymesh/mcpgate/cache"
	cacheredis "github.com/relaymesh/mcpgate/cache/redis"
	"github.com/relaymesh/mcpgate/config"
	"github.com/relaymesh/mcpgate/domain"
	applog "github.com/relaymesh/mcpgate/log"
	"github.com/relaymesh/mcpgate/mcpserver"
	"github.com/relaymesh/mcpgate/middleware"
	"github.com/relaymesh/mcpgate/mongodb"
	"github.com/relaymesh/mcpgate/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	applog.Setup(cfg.LogLevel, cfg.LogPretty)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("store_backend", cfg.StoreBackend).
		Str("code_prefix", cfg.CodePrefix).
		Msg("starting mcpgate")

	tp, err := tracing.InitTracerProvider(cfg.OtelServiceName)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize TracerProvider")
	}

	ctx := context.Background()

	sessions, tokens, teardown, err := buildStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize stores")
	}

	tokenService := mcpgate.NewTokenService(tokens, cfg.TokenTTL())
	authService := mcpgate.NewAuthService(sessions, tokenService, cfg.CodePrefix, cfg.CodeTTL())
	authAPI := echoapi.NewAuthAPI(authService, cfg.ConfirmationURL, cfg.PublicURL, cfg.CodeTTL())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	authAPI.RegisterRoutes(e)

	// Protected tool-invocation layer: the MCP handler sits behind the bearer gate.
	mcpHandler := mcpserver.NewHandler(mcpserver.NewServer())
	e.Any("/mcp", echo.WrapHandler(mcpHandler), middleware.RequireToken(tokenService))

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.HTTPPort); err != nil {
			log.Info().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("TracerProvider shutdown error")
	}

	teardown(shutdownCtx)

	log.Info().Msg("server gracefully stopped")
}

// buildStores wires the session and token stores for the configured backend.
// The returned teardown releases backend resources during shutdown.
func buildStores(ctx context.Context, cfg *config.ServerConfig) (domain.SessionStore, domain.TokenStore, func(context.Context), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, nil, err
		}
		teardown := func(context.Context) {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}
		return cacheredis.NewSessionStore(client, cfg.RedisPrefix),
			cacheredis.NewTokenStore(client, cfg.RedisPrefix),
			teardown, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, nil, err
		}
		sessions, err := mongodb.NewSessionRepository(ctx, db)
		if err != nil {
			return nil, nil, nil, err
		}
		tokens, err := mongodb.NewTokenRepository(ctx, db)
		if err != nil {
			return nil, nil, nil, err
		}
		teardown := func(shutdownCtx context.Context) {
			if err := client.Disconnect(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to disconnect mongo client")
			}
		}
		return sessions, tokens, teardown, nil

	default:
		sessions := cache.NewMemorySessionStore()
		tokens := cache.NewMemoryTokenStore()
		teardown := func(context.Context) {
			_ = sessions.Close()
			_ = tokens.Close()
		}
		return sessions, tokens, teardown, nil
	}
}
