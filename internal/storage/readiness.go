// readiness.go — проверка доступности объектного хранилища для readiness probe.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// healthPath — неаутентифицированный liveness endpoint MinIO-совместимых хранилищ.
const healthPath = "/minio/health/live"

// ReadinessChecker — проверка доступности хранилища через HTTP.
type ReadinessChecker struct {
	endpoint string
	client   *http.Client
}

// NewReadinessChecker создаёт checker доступности хранилища.
func NewReadinessChecker(endpoint string, timeout time.Duration) *ReadinessChecker {
	return &ReadinessChecker{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// CheckReady проверяет liveness endpoint хранилища.
// Недоступное хранилище — degraded, не fail: сервис работоспособен
// без загрузки медиа.
func (c *ReadinessChecker) CheckReady() (status, message string) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, c.endpoint+healthPath, http.NoBody)
	if err != nil {
		return "degraded", "ошибка создания запроса: " + err.Error()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "degraded", fmt.Sprintf("хранилище недоступно: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "degraded", fmt.Sprintf("хранилище вернуло статус %d", resp.StatusCode)
	}

	return "ok", "хранилище доступно"
}
