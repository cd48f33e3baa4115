// uploads.go — координатор батч-загрузки медиа.
// Протокол двухфазный: фаза 1 — сохранение файлов в объектное хранилище
// (на стороне сервера, ключи хранилища не попадают в браузер),
// фаза 2 — одна запись метаданных на каждый выживший URL.
// Отказ одного файла не прерывает остальные.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/lumina-studio/internal/storage"
)

// Метрики конвейера загрузки.
var (
	// uploadFilesTotal — количество файлов по результату загрузки.
	uploadFilesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_upload_files_total",
			Help: "Количество файлов в батчах загрузки по результату",
		},
		[]string{"result"},
	)
)

// UploadFile — один файл батча загрузки.
type UploadFile struct {
	// Filename — оригинальное имя файла
	Filename string
	// ContentType — MIME-тип
	ContentType string
	// Body — поток содержимого
	Body io.Reader
}

// BatchResult — итог обработки одного батча.
// Stored может быть строго меньше Requested: вызывающий обязан
// показывать фактическое число успехов, а не булев результат.
type BatchResult struct {
	// Requested — количество файлов во входном батче
	Requested int
	// Stored — количество файлов, сохранённых в хранилище
	Stored int
	// Failed — количество пропущенных файлов
	Failed int
	// Failures — причины пропуска по каждому отказавшему файлу
	Failures []*StorageError
	// URLs — публичные URL выживших файлов в исходном порядке
	URLs []string
	// Created — количество созданных записей метаданных
	Created int
}

// MetadataPersister — контракт записи метаданных для координатора.
// Реализуется MediaService.
type MetadataPersister interface {
	ValidateCategory(ctx context.Context, categoryID string) error
	CreatePhotoBatch(ctx context.Context, urls []string, meta BatchMetadata) (int, error)
	CreateVideoBatch(ctx context.Context, urls []string, meta BatchMetadata) (int, error)
}

// UploadService — координатор батч-загрузки.
type UploadService struct {
	// store — адаптер хранилища; nil, если хранилище не настроено
	store       storage.Uploader
	media       MetadataPersister
	photoBucket string
	videoBucket string
	now         func() time.Time
	logger      *slog.Logger
}

// NewUploadService создаёт координатор загрузки.
// store == nil означает ненастроенное хранилище: любая попытка загрузки
// завершится storage.ErrNotConfigured до каких-либо сетевых вызовов.
func NewUploadService(
	store storage.Uploader,
	media MetadataPersister,
	photoBucket, videoBucket string,
	logger *slog.Logger,
) *UploadService {
	return &UploadService{
		store:       store,
		media:       media,
		photoBucket: photoBucket,
		videoBucket: videoBucket,
		now:         time.Now,
		logger:      logger.With(slog.String("component", "upload_service")),
	}
}

// UploadPhotos прогоняет батч фотографий: хранилище, затем метаданные.
func (s *UploadService) UploadPhotos(ctx context.Context, files []UploadFile, meta BatchMetadata) (*BatchResult, error) {
	return s.uploadBatch(ctx, s.photoBucket, files, meta, s.media.CreatePhotoBatch)
}

// UploadVideos прогоняет батч видеороликов.
func (s *UploadService) UploadVideos(ctx context.Context, files []UploadFile, meta BatchMetadata) (*BatchResult, error) {
	return s.uploadBatch(ctx, s.videoBucket, files, meta, s.media.CreateVideoBatch)
}

// uploadBatch — общий алгоритм координатора.
// Файлы обрабатываются последовательно в порядке входа; отказавший файл
// пропускается. Персистенция выполняется ровно один раз после цикла и
// только если батч не был отменён.
func (s *UploadService) uploadBatch(
	ctx context.Context,
	bucket string,
	files []UploadFile,
	meta BatchMetadata,
	persist func(context.Context, []string, BatchMetadata) (int, error),
) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: батч не содержит файлов", ErrValidation)
	}
	// Категория проверяется до первой загрузки: невалидный батч не должен
	// оставлять объекты в хранилище.
	if err := s.media.ValidateCategory(ctx, meta.CategoryID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, fmt.Errorf("%w: задайте LS_STORAGE_ENDPOINT", storage.ErrNotConfigured)
	}

	result := &BatchResult{Requested: len(files)}

	for i, f := range files {
		key := storage.ObjectKey(f.Filename, i, s.now())

		if err := s.store.Upload(ctx, bucket, key, f.Body, f.ContentType); err != nil {
			s.logger.Warn("Файл пропущен: ошибка загрузки в хранилище",
				slog.String("filename", f.Filename),
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			uploadFilesTotal.WithLabelValues("failed").Inc()
			result.Failed++
			result.Failures = append(result.Failures, &StorageError{
				Filename: f.Filename,
				Key:      key,
				Err:      err,
			})
			continue
		}

		uploadFilesTotal.WithLabelValues("stored").Inc()
		result.Stored++
		result.URLs = append(result.URLs, s.store.PublicURL(bucket, key))
	}

	// Отменённый батч не персистится, даже если часть файлов уже в хранилище.
	if err := ctx.Err(); err != nil {
		s.logger.Warn("Батч отменён до персистенции",
			slog.Int("stored", result.Stored),
		)
		return nil, fmt.Errorf("батч отменён: %w", err)
	}

	if len(result.URLs) == 0 {
		return nil, fmt.Errorf("%w (файлов: %d)", ErrBatchExhausted, len(files))
	}

	created, err := persist(ctx, result.URLs, meta)
	if err != nil {
		// Объекты уже в хранилище; несогласованность принята (сироты).
		return nil, &PersistenceError{Stored: result.Stored, Err: err}
	}
	result.Created = created

	s.logger.Info("Батч обработан",
		slog.Int("requested", result.Requested),
		slog.Int("stored", result.Stored),
		slog.Int("failed", result.Failed),
		slog.Int("created", result.Created),
	)
	return result, nil
}
