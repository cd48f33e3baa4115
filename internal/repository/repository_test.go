package repository

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/lumina-studio/internal/config"
	"github.com/bigkaa/lumina-studio/internal/database"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool; очистка через t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("lumina_test"),
		postgres.WithUsername("lumina"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load()
	t.Setenv("LS_DB_HOST", host)
	t.Setenv("LS_DB_PORT", port.Port())
	t.Setenv("LS_DB_NAME", "lumina_test")
	t.Setenv("LS_DB_USER", "lumina")
	t.Setenv("LS_DB_PASSWORD", "test-password")
	t.Setenv("LS_DB_SSL_MODE", "disable")
	t.Setenv("LS_JWT_SECRET", "test-secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

// mustCategory создаёт категорию и возвращает её ID.
func mustCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) string {
	t.Helper()
	c := &model.Category{Name: name, Slug: slug}
	if err := NewCategoryRepository(pool).Upsert(context.Background(), c); err != nil {
		t.Fatalf("Upsert() категории: %v", err)
	}
	return c.ID
}

// --- Тесты UserRepository ---

func TestUserRepository(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool)

	u := &model.User{
		Email:        "admin@lumina.com",
		Name:         "Admin",
		PasswordHash: "$2a$12$fakefakefakefakefakefakefakefakefakefakefakefakefake",
		Role:         model.RoleAdmin,
	}

	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("Upsert() ошибка: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "admin@lumina.com")
	if err != nil {
		t.Fatalf("GetByEmail() ошибка: %v", err)
	}
	if got.Role != model.RoleAdmin {
		t.Errorf("Role = %q, хотели ADMIN", got.Role)
	}
	if got.PasswordHash != u.PasswordHash {
		t.Error("PasswordHash не совпадает")
	}

	// Повторный Upsert обновляет, а не дублирует
	u.Name = "Администратор"
	if err := repo.Upsert(ctx, u); err != nil {
		t.Fatalf("повторный Upsert() ошибка: %v", err)
	}
	got, err = repo.GetByEmail(ctx, "admin@lumina.com")
	if err != nil {
		t.Fatalf("GetByEmail() ошибка: %v", err)
	}
	if got.Name != "Администратор" {
		t.Errorf("Name = %q, хотели обновлённое значение", got.Name)
	}

	// Несуществующий email
	if _, err := repo.GetByEmail(ctx, "nobody@lumina.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail() = %v, ожидается ErrNotFound", err)
	}
}

// --- Тесты CategoryRepository ---

func TestCategoryRepository(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewCategoryRepository(pool)

	id := mustCategory(t, pool, "Wedding", "wedding")
	mustCategory(t, pool, "Nature", "nature")

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Slug != "wedding" {
		t.Errorf("Slug = %q, хотели wedding", got.Slug)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len(List()) = %d, хотели 2", len(list))
	}
}

// --- Тесты PhotoRepository ---

func TestPhotoRepositoryCreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewPhotoRepository(pool)

	catID := mustCategory(t, pool, "Wedding", "wedding")
	otherID := mustCategory(t, pool, "Nature", "nature")

	photos := []*model.Photo{
		{Title: "Shoot 1", ImageURL: "https://s.test/photos/1.jpg", CategoryID: catID, IsFeatured: true},
		{Title: "Shoot 2", ImageURL: "https://s.test/photos/2.jpg", CategoryID: catID},
		{Title: "Forest", ImageURL: "https://s.test/photos/3.jpg", CategoryID: otherID},
	}
	for _, p := range photos {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() ошибка: %v", err)
		}
		if p.ID == "" || p.CreatedAt.IsZero() {
			t.Error("ID или CreatedAt не заполнены после Create()")
		}
	}

	// Фильтр по категории
	list, err := repo.List(ctx, PhotoListFilters{CategoryID: &catID}, 100, 0)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len(List(category)) = %d, хотели 2", len(list))
	}

	// Фильтр по featured
	featured := true
	list, err = repo.List(ctx, PhotoListFilters{IsFeatured: &featured}, 100, 0)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Shoot 1" {
		t.Errorf("List(featured) = %v, хотели только Shoot 1", list)
	}
}

// --- Тесты TxRunner ---

// Ошибка внутри транзакции откатывает все вставки батча.
func TestTxRunnerRollback(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	catID := mustCategory(t, pool, "Wedding", "wedding")
	runner := NewTxRunner(pool)

	err := runner.RunInTx(ctx, func(tx pgx.Tx) error {
		repo := NewPhotoRepository(tx)
		if err := repo.Create(ctx, &model.Photo{
			Title: "до отказа", ImageURL: "https://s.test/a.jpg", CategoryID: catID,
		}); err != nil {
			return err
		}
		return errors.New("имитация отказа")
	})
	if err == nil {
		t.Fatal("RunInTx() должен вернуть ошибку fn")
	}

	list, err := NewPhotoRepository(pool).List(ctx, PhotoListFilters{}, 100, 0)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("после отката осталось %d записей, хотели 0", len(list))
	}
}

// --- Тесты VideoRepository и ServiceRepository ---

func TestVideoRepositoryCreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewVideoRepository(pool)

	catID := mustCategory(t, pool, "Wedding", "wedding")

	v := &model.Video{Title: "Highlights", VideoURL: "https://s.test/videos/1.mp4", CategoryID: catID}
	if err := repo.Create(ctx, v); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	list, err := repo.List(ctx, &catID, 100, 0)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Highlights" {
		t.Errorf("List() = %v, хотели один Highlights", list)
	}
}

func TestServiceRepositoryCreateAndList(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewServiceRepository(pool)

	from, to := 500.0, 1500.0
	s := &model.Service{Name: "Wedding package", Description: "Полный день", PriceFrom: &from, PriceTo: &to}
	if err := repo.Create(ctx, s); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(List()) = %d, хотели 1", len(list))
	}
	if list[0].PriceFrom == nil || *list[0].PriceFrom != 500.0 {
		t.Errorf("PriceFrom = %v, хотели 500", list[0].PriceFrom)
	}
}
