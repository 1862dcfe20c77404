package internal

import (
	"context"
	"estate-agent-service/internal/adapters/catalog"
	dynamodb_adapter "estate-agent-service/internal/adapters/dynamodb"
	"estate-agent-service/internal/adapters/kvstore"
	logger_adapter "estate-agent-service/internal/adapters/logger"
	postgres_adapter "estate-agent-service/internal/adapters/postgres"
	rabbitmq_adapter "estate-agent-service/internal/adapters/rabbitmq"
	redis_adapter "estate-agent-service/internal/adapters/redis"
	"estate-agent-service/internal/adapters/rest"
	"estate-agent-service/internal/configs"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/port"
	"estate-agent-service/internal/core/usecase"
	fluentlogger "estate-agent-service/pkg/fluent_logger"
	"estate-agent-service/pkg/postgres"
	"estate-agent-service/pkg/rabbitmq/rabbitmq_common"
	"estate-agent-service/pkg/rabbitmq/rabbitmq_producer"
	pkgredis "estate-agent-service/pkg/redis"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

type App struct {
	config    *configs.AppConfig
	apiServer *rest.Server
	logger    port.LoggerPort

	// закрываются в обратном порядке
	closers []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. Логгеры ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		app.closeAll()
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	ctx = contextkeys.ContextWithLogger(ctx, baseLogger)

	// --- 2. Каталог ---
	listingCatalog, err := app.initCatalog(ctx)
	if err != nil {
		appLogger.Error("Failed to load listing catalog", err, nil)
		app.closeAll()
		return nil, err
	}
	appLogger.Info("Listing catalog loaded", port.Fields{"count": listingCatalog.Len(), "source": appConfig.Catalog.Source})

	// --- 3. Хранилище избранного ---
	kv, err := app.initKeyValueStore(ctx)
	if err != nil {
		appLogger.Error("Failed to initialize favourites storage", err, port.Fields{"storage": appConfig.Favourites.Storage})
		app.closeAll()
		return nil, err
	}
	store, err := usecase.NewFavouritesStore(ctx, kv)
	if err != nil {
		app.closeAll()
		return nil, fmt.Errorf("failed to create favourites store: %w", err)
	}
	appLogger.Info("Favourites store initialized", port.Fields{
		"storage": appConfig.Favourites.Storage,
		"count":   len(store.Snapshot()),
	})

	// --- 4. События ---
	events, err := app.initEvents(baseLogger)
	if err != nil {
		appLogger.Error("Failed to initialize favourites events", err, nil)
		app.closeAll()
		return nil, err
	}

	// --- 5. Use cases и REST ---
	listingsHandler := rest.NewListingsHandler(
		usecase.NewSearchListingsUseCase(listingCatalog),
		usecase.NewGetListingDetailsUseCase(listingCatalog),
		usecase.NewGetFilterOptionsUseCase(listingCatalog),
	)
	favouritesHandler := rest.NewFavouritesHandler(
		usecase.NewGetFavouritesUseCase(store),
		usecase.NewCheckFavouriteUseCase(store),
		usecase.NewAddToFavouritesUseCase(listingCatalog, store, events),
		usecase.NewDropToFavouritesUseCase(store, events),
		usecase.NewRemoveFromFavouritesUseCase(store, events),
		usecase.NewClearFavouritesUseCase(store, events),
		usecase.NewToggleFavouriteUseCase(listingCatalog, store, events),
	)
	appLogger.Info("All use cases initialized", nil)

	router := rest.NewRouter(rest.RouterConfig{AllowedOrigins: appConfig.Rest.AllowedOrigins}, listingsHandler, favouritesHandler, baseLogger)
	app.apiServer = rest.NewServer(appConfig.Rest.Port, router, baseLogger)

	return app, nil
}

func (a *App) addCloser(name string, fn func() error) {
	a.closers = append(a.closers, namedCloser{name: name, close: fn})
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	cfg := a.config

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers := []port.LoggerPort{stdoutLogger}

	if cfg.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		// закрывается последним, после всех сообщений о завершении
		a.addCloser("fluent client", fluentClient.Close)

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			return nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, nil
}

func (a *App) initCatalog(ctx context.Context) (*catalog.JSONCatalog, error) {
	source := a.config.Catalog.Source

	var s3Client catalog.S3ObjectGetter
	if catalog.IsS3Source(source) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.config.Catalog.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client = s3.NewFromConfig(awsCfg)
	}

	data, err := catalog.LoadListings(ctx, source, s3Client)
	if err != nil {
		return nil, err
	}
	return catalog.NewJSONCatalog(data)
}

func (a *App) initKeyValueStore(ctx context.Context) (port.KeyValueStorePort, error) {
	cfg := a.config.Favourites

	switch cfg.Storage {
	case configs.StorageMemory:
		return kvstore.NewMemoryStore(), nil

	case configs.StorageFile:
		return kvstore.NewFileStore(cfg.Dir)

	case configs.StoragePostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.DatabaseURL})
		if err != nil {
			return nil, err
		}
		a.addCloser("postgres pool", func() error { pool.Close(); return nil })

		store, err := postgres_adapter.NewPostgresKeyValueStore(pool)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case configs.StorageRedis:
		client, err := pkgredis.NewClient(ctx, pkgredis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		a.addCloser("redis client", client.Close)
		return redis_adapter.NewRedisKeyValueStore(client, cfg.RedisKeyPrefix)

	case configs.StorageDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		return dynamodb_adapter.NewDynamoDBKeyValueStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable)

	default:
		return nil, fmt.Errorf("unknown favourites storage %q", cfg.Storage)
	}
}

// initEvents возвращает nil, если публикация выключена: use case'ы это допускают.
func (a *App) initEvents(baseLogger port.LoggerPort) (port.FavouritesEventsPort, error) {
	cfg := a.config.RabbitMQ
	if !cfg.Enabled {
		return nil, nil
	}

	connManager, err := rabbitmq_common.NewConnectionManager(
		rabbitmq_common.Config{URL: cfg.URL},
		rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.addCloser("rabbitmq connection", connManager.Close)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             cfg.Exchange,
		ExchangeType:             amqp.ExchangeTopic,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.addCloser("rabbitmq producer", producer.Close)

	publisher, err := rabbitmq_adapter.NewFavouritesEventsPublisher(producer)
	if err != nil {
		return nil, fmt.Errorf("failed to create favourites events publisher: %w", err)
	}
	return publisher, nil
}

// Run запускает HTTP-сервер и ждет сигнала завершения.
func (a *App) Run() error {
	defer a.shutdown()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
		return nil
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
		return err
	}
}

func (a *App) shutdown() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)
	a.closeAll()
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			// логгер уже может писать в закрытый fluent, поэтому stderr
			fmt.Fprintf(os.Stderr, "ERROR: failed to close %s: %v\n", c.name, err)
		}
	}
	a.closers = nil
}
