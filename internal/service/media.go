// media.go — персистенция метаданных медиа и публичные списки.
// Одна запись на каждый успешно сохранённый объект хранилища.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
)

// BatchMetadata — общие метаданные батча загрузки.
type BatchMetadata struct {
	// TitlePrefix — общий заголовок; при нескольких файлах дополняется
	// позицией, чтобы заголовки в батче не совпадали
	TitlePrefix string
	// Description — общее описание
	Description string
	// CategoryID — UUID категории (обязателен)
	CategoryID string
	// IsFeatured — показывать на главной (только фото)
	IsFeatured bool
}

// MediaService — персистер метаданных и чтение галереи.
type MediaService struct {
	photos     repository.PhotoRepository
	videos     repository.VideoRepository
	categories repository.CategoryRepository
	services   repository.ServiceRepository
	tx         *repository.TxRunner
	logger     *slog.Logger
}

// NewMediaService создаёт сервис медиа.
func NewMediaService(
	photos repository.PhotoRepository,
	videos repository.VideoRepository,
	categories repository.CategoryRepository,
	services repository.ServiceRepository,
	tx *repository.TxRunner,
	logger *slog.Logger,
) *MediaService {
	return &MediaService{
		photos:     photos,
		videos:     videos,
		categories: categories,
		services:   services,
		tx:         tx,
		logger:     logger.With(slog.String("component", "media_service")),
	}
}

// ValidateCategory проверяет, что категория задана и существует.
// Некорректный UUID отсекается до запроса к БД: иначе PostgreSQL
// вернул бы 22P02, неотличимую от внутренней ошибки.
func (s *MediaService) ValidateCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return fmt.Errorf("%w: категория обязательна", ErrValidation)
	}
	if _, err := uuid.Parse(categoryID); err != nil {
		return fmt.Errorf("%w: некорректный идентификатор категории %q", ErrValidation, categoryID)
	}

	_, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: категория %q не найдена", ErrValidation, categoryID)
		}
		if errors.Is(err, repository.ErrUnavailable) {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return fmt.Errorf("проверка категории: %w", err)
	}
	return nil
}

// CreatePhotoBatch создаёт по одной записи фотографии на каждый URL.
// Вся вставка выполняется в одной транзакции: либо все записи, либо ни одной.
func (s *MediaService) CreatePhotoBatch(ctx context.Context, urls []string, meta BatchMetadata) (int, error) {
	if len(urls) == 0 {
		return 0, fmt.Errorf("%w: пустой список URL", ErrValidation)
	}
	if err := s.ValidateCategory(ctx, meta.CategoryID); err != nil {
		return 0, err
	}

	titles := batchTitles(meta.TitlePrefix, len(urls))

	err := s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		repo := repository.NewPhotoRepository(tx)
		for i, u := range urls {
			p := &model.Photo{
				Title:       titles[i],
				Description: meta.Description,
				ImageURL:    u,
				CategoryID:  meta.CategoryID,
				IsFeatured:  meta.IsFeatured,
			}
			if err := repo.Create(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Записи фотографий созданы",
		slog.Int("count", len(urls)),
		slog.String("category_id", meta.CategoryID),
	)
	return len(urls), nil
}

// CreateVideoBatch создаёт по одной записи видео на каждый URL,
// в одной транзакции.
func (s *MediaService) CreateVideoBatch(ctx context.Context, urls []string, meta BatchMetadata) (int, error) {
	if len(urls) == 0 {
		return 0, fmt.Errorf("%w: пустой список URL", ErrValidation)
	}
	if err := s.ValidateCategory(ctx, meta.CategoryID); err != nil {
		return 0, err
	}

	titles := batchTitles(meta.TitlePrefix, len(urls))

	err := s.tx.RunInTx(ctx, func(tx pgx.Tx) error {
		repo := repository.NewVideoRepository(tx)
		for i, u := range urls {
			v := &model.Video{
				Title:       titles[i],
				Description: meta.Description,
				VideoURL:    u,
				CategoryID:  meta.CategoryID,
			}
			if err := repo.Create(ctx, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Записи видео созданы",
		slog.Int("count", len(urls)),
		slog.String("category_id", meta.CategoryID),
	)
	return len(urls), nil
}

// ListPhotos возвращает фотографии с фильтрацией.
func (s *MediaService) ListPhotos(ctx context.Context, filters repository.PhotoListFilters, limit, offset int) ([]*model.Photo, error) {
	photos, err := s.photos.List(ctx, filters, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("получение списка фотографий: %w", err)
	}
	return photos, nil
}

// ListVideos возвращает видеоролики.
func (s *MediaService) ListVideos(ctx context.Context, categoryID *string, limit, offset int) ([]*model.Video, error) {
	videos, err := s.videos.List(ctx, categoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("получение списка видео: %w", err)
	}
	return videos, nil
}

// ListCategories возвращает все категории.
func (s *MediaService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка категорий: %w", err)
	}
	return categories, nil
}

// CreateService создаёт запись услуги студии.
func (s *MediaService) CreateService(ctx context.Context, svc *model.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("%w: название услуги обязательно", ErrValidation)
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return fmt.Errorf("создание услуги: %w", err)
	}
	s.logger.Info("Услуга создана", slog.String("name", svc.Name))
	return nil
}

// ListServices возвращает все услуги студии.
func (s *MediaService) ListServices(ctx context.Context) ([]*model.Service, error) {
	services, err := s.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение списка услуг: %w", err)
	}
	return services, nil
}

// batchTitles строит заголовки записей батча. Один файл — заголовок
// как есть; несколько файлов с общим префиксом — "<префикс> 1..N",
// чтобы заголовки в батче были различимы.
func batchTitles(prefix string, n int) []string {
	titles := make([]string, n)
	for i := range titles {
		switch {
		case prefix == "":
			titles[i] = ""
		case n == 1:
			titles[i] = prefix
		default:
			titles[i] = fmt.Sprintf("%s %d", prefix, i+1)
		}
	}
	return titles
}
