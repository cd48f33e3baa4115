// photos.go — обработчики /api/photos endpoints.
// Список фотогалереи и запись метаданных фотографий батчами.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/repository"
	"github.com/bigkaa/lumina-studio/internal/service"
)

// createPhotosRequest — тело запроса POST /api/photos.
// ImageURLs указывают на объекты, уже сохранённые в хранилище;
// Items клиент шлёт как число файлов в батче, сервер опирается
// только на длину imageUrls.
type createPhotosRequest struct {
	Items       int      `json:"items"`
	ImageURLs   []string `json:"imageUrls"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	IsFeatured  bool     `json:"isFeatured"`
}

// createBatchResponse — тело ответа на создание батча метаданных.
type createBatchResponse struct {
	Success bool `json:"success"`
	Created int  `json:"created"`
}

// photoResponse — публичное представление фотографии.
type photoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl"`
	CategoryID  string `json:"categoryId"`
	IsFeatured  bool   `json:"isFeatured"`
	CreatedAt   string `json:"createdAt"`
}

// CreatePhotos — POST /api/photos.
// Создаёт по одной записи метаданных на каждый URL.
// Доступ: ADMIN (через SessionAuth + RequireAdmin).
func (h *APIHandler) CreatePhotos(w http.ResponseWriter, r *http.Request) {
	var req createPhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if len(req.ImageURLs) == 0 {
		apierrors.ValidationError(w, "Требуется хотя бы один URL в imageUrls")
		return
	}

	meta := service.BatchMetadata{
		TitlePrefix: req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsFeatured:  req.IsFeatured,
	}

	created, err := h.media.CreatePhotoBatch(r.Context(), req.ImageURLs, meta)
	if err != nil {
		h.writeBatchError(w, err, "Ошибка записи метаданных фотографий")
		return
	}

	writeJSON(w, http.StatusCreated, createBatchResponse{Success: true, Created: created})
}

// ListPhotos — GET /api/photos.
// Публичный список фотографий с фильтрами category и featured.
func (h *APIHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationFromQuery(r)

	filters := repository.PhotoListFilters{}
	if category := r.URL.Query().Get("category"); category != "" {
		filters.CategoryID = &category
	}
	if rawFeatured := r.URL.Query().Get("featured"); rawFeatured != "" {
		featured, err := strconv.ParseBool(rawFeatured)
		if err != nil {
			apierrors.ValidationError(w, "Параметр featured должен быть true или false")
			return
		}
		filters.IsFeatured = &featured
	}

	photos, err := h.media.ListPhotos(r.Context(), filters, limit, offset)
	if err != nil {
		h.writeBatchError(w, err, "Ошибка получения списка фотографий")
		return
	}

	items := make([]photoResponse, len(photos))
	for i, p := range photos {
		items[i] = photoResponse{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			CategoryID:  p.CategoryID,
			IsFeatured:  p.IsFeatured,
			CreatedAt:   p.CreatedAt.UTC().Format(timeFormat),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

// writeBatchError маппит ошибки сервисного слоя в HTTP-ответы.
func (h *APIHandler) writeBatchError(w http.ResponseWriter, err error, logMessage string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		apierrors.StoreUnavailable(w, "Сервис временно недоступен")
	default:
		h.logger.Error(logMessage, "error", err)
		apierrors.InternalError(w, "Внутренняя ошибка сервера")
	}
}
