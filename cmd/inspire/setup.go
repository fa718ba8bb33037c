package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/inspire/internal/config"
	"github.com/sandevgo/inspire/internal/providers/llm"
	"github.com/sandevgo/inspire/internal/providers/secrets"
	"github.com/sandevgo/inspire/internal/service/catalog"
	"github.com/sandevgo/inspire/internal/service/chat"
	"github.com/sandevgo/inspire/internal/service/responder"
	"github.com/sandevgo/inspire/internal/service/router"
	"github.com/sandevgo/inspire/internal/storage/sqlite"
	"github.com/sandevgo/inspire/internal/transport/httpapi"
	"github.com/sandevgo/inspire/internal/transport/telegram"
	"github.com/sandevgo/inspire/pkg/log"
	"github.com/sandevgo/inspire/pkg/srv"
)

// app holds the wiring shared by every command.
type app struct {
	cfg     *config.AppConfig
	db      *sql.DB
	tools   *sqlite.ToolsRepo
	catalog *catalog.Service
	router  *router.Router
	chat    *chat.Service

	classifier *router.Classifier
}

func newApp(ctx context.Context) (*app, error) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, fmt.Errorf("failed to init env: %w", err)
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	respCfg := config.NewResponderConfig(ctx)

	table, err := config.LoadRoutingTable(appCfg.RoutingFile)
	if err != nil {
		return nil, err
	}

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	tools := sqlite.NewToolsRepo(db)
	convs := sqlite.NewConversationsRepo(db)

	catalogSvc := catalog.NewService(tools, sqlite.NewFavoritesRepo(db))
	if appCfg.SeedCatalog {
		if _, err := catalogSvc.SeedIfEmpty(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	// 3. Routing
	classifier, err := router.NewClassifier(table)
	if err != nil {
		db.Close()
		return nil, err
	}
	rt := router.New(classifier, tools)

	// 4. Responder
	keys := secrets.NewStore(ctx, appCfg.GetSecretsFilePath())
	engine := responder.NewEngine(
		keys,
		llm.NewFactory(respCfg),
		responder.NewSimulator(respCfg.GetSimulationDelay()),
	)

	logger.Debug().
		Str("db", appCfg.GetDatabasePath()).
		Int("routing_version", classifier.Version()).
		Msg("application initialized")

	return &app{
		cfg:     appCfg,
		db:      db,
		tools:   tools,
		catalog: catalogSvc,
		router:  rt,
		chat:    chat.NewService(tools, convs, sqlite.NewSharesRepo(db), rt, engine),

		classifier: classifier,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)

	a, err := newApp(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize application")
	}

	services := []srv.Service{srv.NewCleanup(a.Close)}

	transports, err := initTransports(ctx, a)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled, set INSPIRE_ENABLE_HTTP or INSPIRE_ENABLE_TELEGRAM")
	}

	// Transports stop before the database closes.
	return append(transports, services...)
}

func initTransports(ctx context.Context, a *app) ([]srv.Service, error) {
	var services []srv.Service

	if a.cfg.IsHTTPSelected() {
		services = append(services, httpapi.NewServer(ctx, config.NewHTTPConfig(ctx), a.chat, a.catalog))
	}

	if a.cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, a.chat, a.catalog)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := config.AppConfig{RuntimePath: runtimePath}.GetEnvFilePath()

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
