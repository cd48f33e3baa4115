package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// PhotoRepository — доступ к таблице photos.
type PhotoRepository interface {
	// Create создаёт одну запись фотографии.
	Create(ctx context.Context, p *model.Photo) error
	// List возвращает фотографии с фильтрацией и пагинацией.
	List(ctx context.Context, filters PhotoListFilters, limit, offset int) ([]*model.Photo, error)
}

// PhotoListFilters — фильтры списка фотографий.
type PhotoListFilters struct {
	CategoryID *string
	IsFeatured *bool
}

// photoRepo — реализация PhotoRepository.
type photoRepo struct {
	db DBTX
}

// NewPhotoRepository создаёт репозиторий фотографий.
// db может быть пулом или транзакцией — батч-вставка персистера
// выполняется внутри транзакции через TxRunner.
func NewPhotoRepository(db DBTX) PhotoRepository {
	return &photoRepo{db: db}
}

func (r *photoRepo) Create(ctx context.Context, p *model.Photo) error {
	query := `
		INSERT INTO photos (title, description, image_url, category_id, is_featured)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		p.Title, p.Description, p.ImageURL, p.CategoryID, p.IsFeatured,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи фотографии: %w", classify(err))
	}
	return nil
}

func (r *photoRepo) List(ctx context.Context, filters PhotoListFilters, limit, offset int) ([]*model.Photo, error) {
	where := ""
	args := []any{}
	argNum := 1

	if filters.CategoryID != nil {
		where = fmt.Sprintf("WHERE category_id = $%d", argNum)
		args = append(args, *filters.CategoryID)
		argNum++
	}
	if filters.IsFeatured != nil {
		if where == "" {
			where = fmt.Sprintf("WHERE is_featured = $%d", argNum)
		} else {
			where += fmt.Sprintf(" AND is_featured = $%d", argNum)
		}
		args = append(args, *filters.IsFeatured)
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, image_url, category_id, is_featured, created_at
		FROM photos
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка фотографий: %w", classify(err))
	}
	defer rows.Close()

	var result []*model.Photo
	for rows.Next() {
		p := &model.Photo{}
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CategoryID, &p.IsFeatured, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования фотографии: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
