package container

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-account-console/app/db"
	"github.com/FACorreiaa/go-account-console/app/observability/metrics"
	"github.com/FACorreiaa/go-account-console/config"
	"github.com/FACorreiaa/go-account-console/internal/api/auth"
	"github.com/FACorreiaa/go-account-console/internal/api/user"
	"github.com/FACorreiaa/go-account-console/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Metrics       *metrics.AppMetrics
	Pool          *pgxpool.Pool
	UserRepo      user.UserRepo
	Tokens        *auth.JWTService
	Authenticator *auth.Authenticator
	AuthHandler   *auth.AuthHandler
	UserHandler   *user.HandlerImpl
}

// NewContainer migrates the schema, opens the pool, waits for the database
// and wires every service on top of PostgresUserRepo.
func NewContainer(ctx context.Context, cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return nil, err
	}

	pool, err := database.Init(dbConfig, logger)
	if err != nil {
		return nil, err
	}
	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, fmt.Errorf("database not ready")
	}

	c, err := Build(cfg, user.NewPostgresUserRepo(pool, appMetrics, logger), appMetrics, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	c.Pool = pool
	return c, nil
}

// Build wires services and handlers over an existing credential store.
func Build(cfg *config.Config, repo user.UserRepo, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	if appMetrics == nil {
		appMetrics = metrics.NewNoop()
	}

	tokens, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Password.Cost)
	exposeDetails := cfg.IsDevelopment()

	authService := auth.NewAuthService(repo, hasher, tokens, appMetrics, logger)
	authenticator := auth.NewAuthenticator(tokens, repo, appMetrics, logger)
	userService := user.NewUserService(repo, appMetrics, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Metrics:       appMetrics,
		UserRepo:      repo,
		Tokens:        tokens,
		Authenticator: authenticator,
		AuthHandler:   auth.NewAuthHandler(authService, exposeDetails, logger),
		UserHandler:   user.NewHandlerImpl(userService, exposeDetails, logger),
	}, nil
}

// Router returns the HTTP handler for the API server.
func (c *Container) Router() http.Handler {
	return router.SetupRouter(&router.Config{
		AuthHandler:            c.AuthHandler,
		UserHandler:            c.UserHandler,
		AuthenticateMiddleware: c.Authenticator.Middleware,
		AllowedOrigins:         c.Config.CORS.AllowedOrigins,
		RequestTimeout:         c.Config.Server.Timeout,
		Logger:                 c.Logger,
	})
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
