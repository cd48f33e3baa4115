// handler.go — основной обработчик API Lumina Studio.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
	"github.com/bigkaa/lumina-studio/internal/service"
)

// MediaService — контракт сервисного слоя медиа для обработчиков.
// Реализуется service.MediaService.
type MediaService interface {
	CreatePhotoBatch(ctx context.Context, urls []string, meta service.BatchMetadata) (int, error)
	CreateVideoBatch(ctx context.Context, urls []string, meta service.BatchMetadata) (int, error)
	ListPhotos(ctx context.Context, filters repository.PhotoListFilters, limit, offset int) ([]*model.Photo, error)
	ListVideos(ctx context.Context, categoryID *string, limit, offset int) ([]*model.Video, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	CreateService(ctx context.Context, svc *model.Service) error
	ListServices(ctx context.Context) ([]*model.Service, error)
}

// APIHandler — основной обработчик API.
// Делегирует запросы в сервисный слой.
type APIHandler struct {
	health  *HealthHandler
	login   *service.LoginService
	media   MediaService
	uploads *service.UploadService
	tokens  *auth.TokenService
	cookies *auth.CookieGateway
	// revoked — список отозванных токенов; nil, если Redis не настроен
	revoked *auth.RevocationList
	logger  *slog.Logger
}

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	health *HealthHandler,
	login *service.LoginService,
	media MediaService,
	uploads *service.UploadService,
	tokens *auth.TokenService,
	cookies *auth.CookieGateway,
	revoked *auth.RevocationList,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		health:  health,
		login:   login,
		media:   media,
		uploads: uploads,
		tokens:  tokens,
		cookies: cookies,
		revoked: revoked,
		logger:  logger.With(slog.String("component", "api_handler")),
	}
}

// HealthLive — liveness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe (делегируется в HealthHandler).
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики (делегируется в HealthHandler).
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// timeFormat — формат временных меток в ответах API.
const timeFormat = time.RFC3339

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// paginationFromQuery извлекает и нормализует limit/offset из query-параметров.
func paginationFromQuery(r *http.Request) (int, int) {
	l := 100
	o := 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			l = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			o = v
		}
	}

	if l < 1 {
		l = 1
	}
	if l > 1000 {
		l = 1000
	}
	if o < 0 {
		o = 0
	}

	return l, o
}
