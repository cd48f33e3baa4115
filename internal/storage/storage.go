// Пакет storage — адаптер S3-совместимого объектного хранилища.
// Одна попытка загрузки на объект, без повторов; публичный URL
// выводится из bucket и ключа без обращения к сети.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/bigkaa/lumina-studio/internal/config"
)

// ErrNotConfigured — хранилище не настроено (endpoint отсутствует или
// содержит placeholder). Ошибка конфигурации, а не времени выполнения:
// возникает до любого сетевого вызова.
var ErrNotConfigured = errors.New("объектное хранилище не настроено")

// Uploader — контракт адаптера хранилища для координатора загрузок.
type Uploader interface {
	// Upload загружает один объект в указанный bucket. Одна попытка.
	Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error
	// PublicURL возвращает публичный адрес объекта. Чистая функция.
	PublicURL(bucket, key string) string
}

// Client — S3-клиент хранилища.
type Client struct {
	s3Client   *s3.Client
	publicBase string
	logger     *slog.Logger
}

// New создаёт клиент объектного хранилища.
// Возвращает ErrNotConfigured, если endpoint не задан или является
// placeholder-значением — в этом случае никакие сетевые вызовы не выполняются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if !cfg.StorageConfigured() {
		return nil, fmt.Errorf("%w: задайте LS_STORAGE_ENDPOINT", ErrNotConfigured)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка конфигурации S3-клиента: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageEndpoint)
		// Совместимые хранилища (MinIO, Supabase Storage) ожидают path-style
		o.UsePathStyle = true
	})

	logger.Info("Клиент объектного хранилища создан",
		slog.String("endpoint", cfg.StorageEndpoint),
		slog.String("region", cfg.StorageRegion),
	)

	return &Client{
		s3Client:   s3Client,
		publicBase: cfg.StoragePublicBaseURL,
		logger:     logger.With(slog.String("component", "storage_client")),
	}, nil
}

// Upload загружает объект в bucket. Выполняется одна попытка PutObject;
// политика повторов — ответственность вызывающего (координатор её не имеет).
func (c *Client) Upload(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("хранилище отклонило объект %q (код %s): %w", key, apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("ошибка загрузки объекта %q: %w", key, err)
	}

	c.logger.Debug("Объект загружен",
		slog.String("bucket", bucket),
		slog.String("key", key),
	)
	return nil
}

// PublicURL возвращает публичный адрес объекта: <base>/<bucket>/<key>.
// Сетевых вызовов не выполняет.
func (c *Client) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", c.publicBase, bucket, url.PathEscape(key))
}

// ObjectKey строит ключ объекта вида <unixMillis>_<index>_<имяФайла>.
// Метка времени и позиция в батче гарантируют уникальность внутри батча
// и между батчами одного процесса; пробелы в имени заменяются на "_".
func ObjectKey(filename string, index int, now time.Time) string {
	return fmt.Sprintf("%d_%d_%s", now.UnixMilli(), index, sanitizeFilename(filename))
}

// sanitizeFilename приводит имя файла к безопасному виду для ключа:
// отбрасывает путь, заменяет пробелы на подчёркивания.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.ReplaceAll(base, " ", "_")
}
