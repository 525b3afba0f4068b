package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/gstbridge/gstr-ledger/internal/application/service"
	"github.com/gstbridge/gstr-ledger/internal/config"
	"github.com/gstbridge/gstr-ledger/internal/export"
	"github.com/gstbridge/gstr-ledger/internal/infrastructure/cache"
	"github.com/gstbridge/gstr-ledger/internal/infrastructure/importer"
	"github.com/gstbridge/gstr-ledger/internal/infrastructure/persistence/repository"
	"github.com/gstbridge/gstr-ledger/internal/infrastructure/persistence/sqlite"
	"github.com/gstbridge/gstr-ledger/internal/infrastructure/storage"
	ihttp "github.com/gstbridge/gstr-ledger/internal/interfaces/http"
	"github.com/gstbridge/gstr-ledger/internal/transform"
	"github.com/gstbridge/gstr-ledger/pkg/database"
	"github.com/gstbridge/gstr-ledger/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting GSTR ledger bridge",
		zap.String("company", cfg.Company.Name),
		zap.Int("port", cfg.Server.Port))

	// Create necessary directories
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}
	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create export directory", zap.Error(err))
	}

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Transaction manager shared by the repositories
	txManager := sqlite.NewDB(db.DB, logger)

	// Initialize repositories
	importRepo := repository.NewImportRepository(db.DB, txManager, logger)
	documentStore := repository.NewDocumentRepository(db.DB, txManager, logger)
	ledgerNameRepo := repository.NewLedgerNameRepository(db.DB, logger)

	documentCache := cache.NewInMemoryDocumentCache(logger)

	// Initialize services
	importService := service.NewImportService(importRepo, importer.NewXLSXReader(logger), logger)
	documentService := service.NewDocumentService(
		importRepo,
		documentStore,
		documentCache,
		transform.DefaultStateCodeTable(),
		cfg.Company.Name,
		logger,
	)
	exportService := service.NewExportService(
		documentService,
		export.NewExcelWriter(logger),
		storage.NewLocalFileStorage(cfg.Export.OutputDir, logger),
		logger,
	)
	ledgerNameService := service.NewLedgerNameService(ledgerNameRepo, logger)

	// Initialize HTTP server
	server := ihttp.NewServer(ihttp.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, importService, documentService, exportService, ledgerNameService, logger)

	ctx := context.Background()
	if err := server.Start(ctx); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
	}

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
