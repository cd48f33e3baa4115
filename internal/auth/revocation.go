// revocation.go — список отозванных токенов (по jti) в Redis.
// Опционален: без Redis токен остаётся полностью stateless и
// действителен до естественного истечения срока.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// revocationKeyPrefix — префикс ключей отозванных jti.
const revocationKeyPrefix = "lumina:revoked:"

// RevocationList — список отозванных токенов.
// Запись живёт столько, сколько осталось жить самому токену.
type RevocationList struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRevocationList создаёт список отзыва поверх Redis и проверяет
// доступность сервера через ping.
func NewRevocationList(ctx context.Context, addr, password string, db int, logger *slog.Logger) (*RevocationList, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ошибка подключения к Redis: %w", err)
	}

	return &RevocationList{
		client: client,
		logger: logger.With(slog.String("component", "revocation_list")),
	}, nil
}

// Revoke помечает jti отозванным на остаток срока жизни токена.
// Отрицательный или нулевой ttl — токен уже истёк, запись не нужна.
func (l *RevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := l.client.Set(ctx, revocationKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи отзыва токена: %w", err)
	}

	l.logger.Info("Токен отозван",
		slog.String("jti", jti),
		slog.Duration("ttl", ttl),
	)
	return nil
}

// IsRevoked проверяет, отозван ли токен с данным jti.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("ошибка проверки отзыва токена: %w", err)
	}
	return n > 0, nil
}

// Close закрывает подключение к Redis.
func (l *RevocationList) Close() error {
	return l.client.Close()
}
