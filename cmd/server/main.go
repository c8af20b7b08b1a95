package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/app"
	"github.com/Freeeeeet/store_scheduler/internal/config"
	"github.com/Freeeeeet/store_scheduler/internal/controller"
	"github.com/Freeeeeet/store_scheduler/internal/controller/handlers"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"github.com/Freeeeeet/store_scheduler/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting store scheduler",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create db pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Применяем миграции до старта сервера
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	storeRepo := repository.NewStoreRepository(pool)
	roomRepo := repository.NewRoomRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	scriptRepo := repository.NewScriptRepository(pool)
	characterRepo := repository.NewCharacterRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	dmRepo := repository.NewDmRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	clientMatchRepo := repository.NewCharacterClientMatchRepository(pool)
	dmMatchRepo := repository.NewCharacterDmMatchRepository(pool)

	// Сервисы
	conflictService := service.NewConflictService(bookingRepo)
	bookingService := service.NewBookingService(
		pool,
		storeRepo,
		scriptRepo,
		characterRepo,
		clientRepo,
		roomRepo,
		slotRepo,
		bookingRepo,
		clientMatchRepo,
		conflictService,
		logger,
	)
	roomService := service.NewRoomService(storeRepo, roomRepo, logger)
	slotService := service.NewSlotService(storeRepo, slotRepo, logger)
	scriptService := service.NewScriptService(pool, storeRepo, scriptRepo, characterRepo, bookingRepo, logger)
	characterService := service.NewScriptCharacterService(scriptRepo, characterRepo, logger)
	clientMatchService := service.NewCharacterClientMatchService(pool, bookingRepo, characterRepo, clientMatchRepo, logger)
	dmMatchService := service.NewCharacterDmMatchService(pool, bookingRepo, characterRepo, dmRepo, dmMatchRepo, logger)

	// HTTP
	server := app.NewServer(cfg.HTTPAddr, logger)
	h := handlers.NewHandlers(
		bookingService,
		roomService,
		slotService,
		scriptService,
		characterService,
		clientMatchService,
		dmMatchService,
		logger,
	)
	controller.RegisterRoutes(server.Echo(), h)

	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server gracefully", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server stopped")
}
