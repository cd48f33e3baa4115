package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// VideoRepository — доступ к таблице videos.
type VideoRepository interface {
	// Create создаёт одну запись видеоролика.
	Create(ctx context.Context, v *model.Video) error
	// List возвращает видеоролики с пагинацией.
	List(ctx context.Context, categoryID *string, limit, offset int) ([]*model.Video, error)
}

// videoRepo — реализация VideoRepository.
type videoRepo struct {
	db DBTX
}

// NewVideoRepository создаёт репозиторий видеороликов.
func NewVideoRepository(db DBTX) VideoRepository {
	return &videoRepo{db: db}
}

func (r *videoRepo) Create(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (title, description, video_url, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		v.Title, v.Description, v.VideoURL, v.CategoryID,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания записи видео: %w", classify(err))
	}
	return nil
}

func (r *videoRepo) List(ctx context.Context, categoryID *string, limit, offset int) ([]*model.Video, error) {
	where := ""
	args := []any{}
	argNum := 1

	if categoryID != nil {
		where = fmt.Sprintf("WHERE category_id = $%d", argNum)
		args = append(args, *categoryID)
		argNum++
	}

	query := fmt.Sprintf(`
		SELECT id, title, description, video_url, category_id, created_at
		FROM videos
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, argNum, argNum+1)

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка видео: %w", classify(err))
	}
	defer rows.Close()

	var result []*model.Video
	for rows.Next() {
		v := &model.Video{}
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.VideoURL, &v.CategoryID, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования видео: %w", err)
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
