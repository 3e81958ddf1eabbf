// Package app initializes and runs the Hoaxify client. It configures
// logging, the persistent storage, the session service and the page
// server, and handles graceful shutdown.
package app

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/hoaxify/internal/api"
	"github.com/patric-chuzhbe/hoaxify/internal/auth"
	"github.com/patric-chuzhbe/hoaxify/internal/config"
	"github.com/patric-chuzhbe/hoaxify/internal/csrf"
	"github.com/patric-chuzhbe/hoaxify/internal/db/jsondb"
	"github.com/patric-chuzhbe/hoaxify/internal/db/memorystorage"
	"github.com/patric-chuzhbe/hoaxify/internal/db/postgresdb"
	"github.com/patric-chuzhbe/hoaxify/internal/db/redisdb"
	dbstorage "github.com/patric-chuzhbe/hoaxify/internal/db/storage"
	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
	"github.com/patric-chuzhbe/hoaxify/internal/ipchecker"
	"github.com/patric-chuzhbe/hoaxify/internal/logger"
	"github.com/patric-chuzhbe/hoaxify/internal/models"
	"github.com/patric-chuzhbe/hoaxify/internal/obfuscator"
	"github.com/patric-chuzhbe/hoaxify/internal/router"
	"github.com/patric-chuzhbe/hoaxify/internal/storage"
	"github.com/patric-chuzhbe/hoaxify/internal/view"
)

const csrfKeyLength = 32

// App holds everything the client process owns between start and shutdown.
type App struct {
	cfg         *config.Config
	db          dbstorage.Storage
	session     *auth.Service
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - selecting and setting up storage
// - restoring the session
// - setting up the backend client, the router and middleware
func New(optionsProto ...config.InitOption) (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New(optionsProto...)
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	if app.cfg.StorageSecret != "" {
		theObfuscator, err := obfuscator.New(app.cfg.StorageSecret)
		if err != nil {
			return nil, err
		}
		app.db = obfuscator.Wrap(app.db, theObfuscator)
	}

	store := storage.New(app.db)
	app.session = auth.New(context.Background(), auth.NewStorageRepository(store))

	translator, err := i18n.New(app.cfg.Locale)
	if err != nil {
		return nil, err
	}

	client := api.New(
		app.cfg.APIBaseURL,
		translator,
		api.WithAuthorization(func() string {
			return app.session.State().Header
		}),
	)

	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	guard, err := ipchecker.New(app.cfg.TrustedSubnet)
	if err != nil {
		return nil, err
	}

	csrfKey, err := getCSRFSigningKey(app.cfg)
	if err != nil {
		return nil, err
	}

	app.httpHandler = router.New(
		store,
		client,
		app.session,
		translator,
		renderer,
		guard,
		csrf.New(csrfKey),
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr, "APIBaseURL", a.cfg.APIBaseURL)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Closing the session and the storage...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		a.session.Close()

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

// getCSRFSigningKey returns the configured key, or a random one that lives
// as long as the process.
func getCSRFSigningKey(cfg *config.Config) ([]byte, error) {
	if cfg.CSRFSigningKey != "" {
		return []byte(cfg.CSRFSigningKey), nil
	}

	key := make([]byte, csrfKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("in internal/app/app.go/getCSRFSigningKey(): error while `rand.Read()` calling: %w", err)
	}
	logger.Log.Debugln("CSRF_SIGNING_KEY is not set, using a random key")

	return key, nil
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	if cfg.RedisAddr != "" {
		return models.StorageTypeRedis
	}

	if cfg.DBFileName != "" {
		return models.StorageTypeFile
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (dbstorage.Storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			cfg.MigrationsDir,
		)

	case models.StorageTypeRedis:
		return redisdb.New(
			context.Background(),
			cfg.RedisAddr,
			redisdb.DefaultNamespace,
			cfg.DBConnectionTimeout,
		)

	case models.StorageTypeFile:
		return jsondb.New(cfg.DBFileName)
	}

	memoryStorage, err := memorystorage.New()
	if err != nil {
		logger.Log.Debugln("Error calling the `memorystorage.New()`: ", zap.Error(err))
		return nil, err
	}

	return memoryStorage, nil
}
