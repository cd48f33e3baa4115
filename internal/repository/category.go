package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// CategoryRepository — доступ к таблице categories.
type CategoryRepository interface {
	// List возвращает все категории по алфавиту.
	List(ctx context.Context) ([]*model.Category, error)
	// GetByID возвращает категорию по UUID.
	GetByID(ctx context.Context, id string) (*model.Category, error)
	// Upsert создаёт или обновляет категорию по slug (для сидера).
	Upsert(ctx context.Context, c *model.Category) error
}

// categoryRepo — реализация CategoryRepository.
type categoryRepo struct {
	db DBTX
}

// NewCategoryRepository создаёт репозиторий категорий.
func NewCategoryRepository(db DBTX) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM categories
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка категорий: %w", classify(err))
	}
	defer rows.Close()

	var result []*model.Category
	for rows.Next() {
		c := &model.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования категории: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	query := `
		SELECT id, name, slug, created_at
		FROM categories
		WHERE id = $1`

	c := &model.Category{}
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения категории: %w", classify(err))
	}
	return c, nil
}

func (r *categoryRepo) Upsert(ctx context.Context, c *model.Category) error {
	query := `
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, c.Name, c.Slug).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка upsert категории: %w", classify(err))
	}
	return nil
}
