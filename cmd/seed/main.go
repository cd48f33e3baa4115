// Точка входа seed — первоначальное наполнение базы данных.
// Создаёт (или обновляет) администратора и базовый набор категорий галереи.
// Email и пароль администратора берутся из LS_SEED_ADMIN_EMAIL и
// LS_SEED_ADMIN_PASSWORD. Запуск идемпотентен.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/config"
	"github.com/bigkaa/lumina-studio/internal/database"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
)

// defaultCategories — стартовый набор категорий галереи.
var defaultCategories = []model.Category{
	{Name: "Wedding", Slug: "wedding"},
	{Name: "Pre-Wedding", Slug: "pre-wedding"},
	{Name: "Birthday", Slug: "birthday"},
	{Name: "Traditional", Slug: "traditional"},
	{Name: "Nature", Slug: "nature"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := config.SetupLogger(cfg)

	adminEmail := os.Getenv("LS_SEED_ADMIN_EMAIL")
	adminPassword := os.Getenv("LS_SEED_ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Error("Требуются LS_SEED_ADMIN_EMAIL и LS_SEED_ADMIN_PASSWORD")
		os.Exit(1)
	}

	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// Администратор
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		logger.Error("Ошибка хеширования пароля", slog.String("error", err.Error()))
		os.Exit(1)
	}

	users := repository.NewUserRepository(pool)
	admin := &model.User{
		Email:        adminEmail,
		Name:         "Admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Upsert(ctx, admin); err != nil {
		logger.Error("Ошибка создания администратора", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Администратор создан или обновлён", slog.String("email", adminEmail))

	// Категории
	categories := repository.NewCategoryRepository(pool)
	for i := range defaultCategories {
		c := defaultCategories[i]
		if err := categories.Upsert(ctx, &c); err != nil {
			logger.Error("Ошибка создания категории",
				slog.String("slug", c.Slug),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}
	logger.Info("Категории созданы или обновлены", slog.Int("count", len(defaultCategories)))

	logger.Info("Наполнение базы завершено")
}
