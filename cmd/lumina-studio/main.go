// Точка входа Lumina Studio — бэк-офис сайта фотостудии.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// инициализирует клиент объектного хранилища и опциональный Redis,
// создаёт сервисный слой и API handlers, запускает topologymetrics
// и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/lumina-studio/internal/api/handlers"
	"github.com/bigkaa/lumina-studio/internal/api/middleware"
	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/config"
	"github.com/bigkaa/lumina-studio/internal/database"
	"github.com/bigkaa/lumina-studio/internal/repository"
	"github.com/bigkaa/lumina-studio/internal/server"
	"github.com/bigkaa/lumina-studio/internal/service"
	"github.com/bigkaa/lumina-studio/internal/storage"
)

// Таймаут HTTP-проверки хранилища в readiness probe.
const storageReadinessTimeout = 5 * time.Second

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Lumina Studio запускается",
		slog.String("version", config.Version),
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	// Предупреждения о дефолтных значениях topologymetrics
	if os.Getenv("LS_DEPHEALTH_GROUP") == "" {
		logger.Warn("LS_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Клиент объектного хранилища.
	// Ненастроенное хранилище не останавливает запуск: логин и чтение
	// галерей работают, загрузка медиа вернёт ошибку конфигурации.
	var uploader storage.Uploader
	storageClient, err := storage.New(ctx, cfg, logger)
	switch {
	case err == nil:
		uploader = storageClient
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("Объектное хранилище не настроено, загрузка медиа недоступна")
	default:
		logger.Error("Ошибка создания клиента хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 6. Redis — список отозванных токенов (опционально)
	var revoked *auth.RevocationList
	if cfg.RedisAddr != "" {
		revoked, err = auth.NewRevocationList(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			logger.Warn("Redis недоступен, сессии без ревокации (stateless)",
				slog.String("error", err.Error()),
			)
			revoked = nil
		} else {
			defer revoked.Close()
		}
	} else {
		logger.Info("Redis не настроен, сессии полностью stateless")
	}

	// 7. Repositories
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	// 8. Auth-компоненты
	tokens := auth.NewTokenService(cfg.JWTSecret)
	cookies := auth.NewCookieGateway(cfg.Production())

	// 9. Services
	loginSvc := service.NewLoginService(userRepo, tokens, logger)
	mediaSvc := service.NewMediaService(photoRepo, videoRepo, categoryRepo, serviceRepo, txRunner, logger)
	uploadSvc := service.NewUploadService(uploader, mediaSvc, cfg.PhotoBucket, cfg.VideoBucket, logger)

	// 10. Readiness checkers (PostgreSQL + хранилище)
	pgChecker := database.NewReadinessChecker(pool)
	var storageChecker handlers.ReadinessChecker
	if cfg.StorageConfigured() {
		storageChecker = storage.NewReadinessChecker(cfg.StorageEndpoint, storageReadinessTimeout)
	}
	healthHandler := handlers.NewHealthHandler(pgChecker, storageChecker)

	// 11. API handler
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		loginSvc,
		mediaSvc,
		uploadSvc,
		tokens,
		cookies,
		revoked,
		logger,
	)

	// 12. Session middleware
	sessionAuth := middleware.NewSessionAuth(tokens, revoked, logger)

	// 13. topologymetrics — мониторинг зависимостей
	storageEndpoint := ""
	if cfg.StorageConfigured() {
		storageEndpoint = cfg.StorageEndpoint
	}
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"lumina-studio",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		storageEndpoint,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 14. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler, sessionAuth)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 15. Graceful shutdown фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	logger.Info("Lumina Studio остановлен")
}
