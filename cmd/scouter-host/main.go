package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/scouterhq/scouter-host/internal/api"
	"github.com/scouterhq/scouter-host/internal/broker"
	"github.com/scouterhq/scouter-host/internal/capture"
	"github.com/scouterhq/scouter-host/internal/dialog"
	"github.com/scouterhq/scouter-host/internal/logger"
	"github.com/scouterhq/scouter-host/internal/platform"
	"github.com/scouterhq/scouter-host/internal/store"
	"github.com/scouterhq/scouter-host/pkg/models"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	platformOverride := getEnv("SCOUTER_PLATFORM", "")
	documentRoot := getEnv("SCOUTER_DOCUMENT_ROOT", defaultDocumentRoot())
	logLevel := getEnv("LOG_LEVEL", "info")

	minioEndpoint := getEnv("MINIO_ENDPOINT", "")
	minioAccessKey := getEnv("MINIO_ACCESS_KEY", "scouter")
	minioSecretKey := getEnv("MINIO_SECRET_KEY", "scouter123")
	minioBucket := getEnv("MINIO_BUCKET", "scouter")
	minioUseSSL := getEnv("MINIO_USE_SSL", "false") == "true"

	log, err := logger.New(logger.Config{Level: logLevel})
	if err != nil {
		panic(err)
	}

	info := platform.Detect(platformOverride)
	log.Info().Str("platform", info.Platform).Bool("native", info.IsNative).Msg("platform detected")

	prompter := dialog.NewConsolePrompter(logger.WithComponent(log, "dialog"))
	sharer := dialog.NewConsoleSharer(logger.WithComponent(log, "share"))
	settings := dialog.NewSystemSettingsOpener(logger.WithComponent(log, "settings"))
	provider := capture.NewScreenProvider(logger.WithComponent(log, "capture"))

	gated := runtime.GOOS == "darwin" || getEnv("SCOUTER_FORCE_GATED", "") == "true"

	brk := broker.New(broker.Config{
		Provider: provider,
		Prompter: prompter,
		Settings: settings,
		Gated:    gated,
		Logger:   logger.WithComponent(log, "broker"),
	})

	if gated {
		if state := brk.CheckPermission(ctx); !state.HasPermission {
			log.Warn().Str("message", state.Message).Msg("screen recording permission not granted on startup")
		}
	}

	assetStore, changes := buildStore(ctx, buildStoreConfig{
		info:           info,
		documentRoot:   documentRoot,
		minioEndpoint:  minioEndpoint,
		minioAccessKey: minioAccessKey,
		minioSecretKey: minioSecretKey,
		minioBucket:    minioBucket,
		minioUseSSL:    minioUseSSL,
		prompter:       prompter,
		sharer:         sharer,
		log:            log,
	})

	if err := assetStore.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}

	server := api.NewServer(api.ServerConfig{
		Broker:  brk,
		Store:   assetStore,
		Changes: changes,
		Logger:  logger.WithComponent(log, "api"),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("shutting down...")
		cancel()
	}()

	log.Info().Str("addr", listenAddr).Msg("starting scouter-host server")
	if err := server.Run(listenAddr); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

type buildStoreConfig struct {
	info           models.PlatformInfo
	documentRoot   string
	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioBucket    string
	minioUseSSL    bool
	prompter       dialog.Prompter
	sharer         dialog.Sharer
	log            zerolog.Logger
}

// buildStore selects the store implementation once, based on platform and
// configuration. The returned channel, when non-nil, carries asset-change
// notifications for connected channel clients.
func buildStore(ctx context.Context, cfg buildStoreConfig) (store.Store, <-chan struct{}) {
	storeLog := logger.WithComponent(cfg.log, "store")

	if cfg.minioEndpoint != "" {
		objStore, err := store.NewObjectStore(store.ObjectStoreConfig{
			Endpoint:  cfg.minioEndpoint,
			AccessKey: cfg.minioAccessKey,
			SecretKey: cfg.minioSecretKey,
			Bucket:    cfg.minioBucket,
			UseSSL:    cfg.minioUseSSL,
			Platform:  cfg.info,
			Prompter:  cfg.prompter,
			Sharer:    cfg.sharer,
			Logger:    storeLog,
		})
		if err != nil {
			cfg.log.Fatal().Err(err).Msg("failed to create object store")
		}
		return objStore, nil
	}

	if cfg.info.IsNative {
		fileStore := store.NewFileStore(store.FileStoreConfig{
			DocumentRoot: cfg.documentRoot,
			Platform:     cfg.info,
			Prompter:     cfg.prompter,
			Sharer:       cfg.sharer,
			Logger:       storeLog,
		})

		var changes <-chan struct{}
		if err := fileStore.Initialize(ctx); err == nil {
			watcher, err := store.NewWatcher(fileStore.Dir(), logger.WithComponent(cfg.log, "watcher"))
			if err != nil {
				cfg.log.Warn().Err(err).Msg("recordings watcher unavailable")
			} else {
				go watcher.Run(ctx)
				changes = watcher.Events()
			}
		}

		return fileStore, changes
	}

	return store.NewMockStore(cfg.info, cfg.prompter, storeLog), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultDocumentRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}
