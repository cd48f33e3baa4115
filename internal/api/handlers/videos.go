// videos.go — обработчики /api/videos endpoints.
// Список видеогалереи и запись метаданных видеороликов батчами.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/service"
)

// createVideosRequest — тело запроса POST /api/videos.
// Клиент шлёт одиночный videoUrl; videoUrls — батчевая форма
// для серверного конвейера загрузки. Допустима ровно одна из двух.
type createVideosRequest struct {
	VideoURL    string   `json:"videoUrl"`
	VideoURLs   []string `json:"videoUrls"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
}

// videoResponse — публичное представление видеоролика.
type videoResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	VideoURL    string `json:"videoUrl"`
	CategoryID  string `json:"categoryId"`
	CreatedAt   string `json:"createdAt"`
}

// CreateVideos — POST /api/videos.
// Создаёт по одной записи метаданных на каждый URL.
// Доступ: ADMIN (через SessionAuth + RequireAdmin).
func (h *APIHandler) CreateVideos(w http.ResponseWriter, r *http.Request) {
	var req createVideosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	urls := req.VideoURLs
	if len(urls) == 0 && req.VideoURL != "" {
		urls = []string{req.VideoURL}
	}
	if len(urls) == 0 {
		apierrors.ValidationError(w, "Требуется videoUrl или непустой videoUrls")
		return
	}

	meta := service.BatchMetadata{
		TitlePrefix: req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}

	created, err := h.media.CreateVideoBatch(r.Context(), urls, meta)
	if err != nil {
		h.writeBatchError(w, err, "Ошибка записи метаданных видео")
		return
	}

	writeJSON(w, http.StatusCreated, createBatchResponse{Success: true, Created: created})
}

// ListVideos — GET /api/videos.
// Публичный список видеороликов с фильтром category.
func (h *APIHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationFromQuery(r)

	var categoryID *string
	if category := r.URL.Query().Get("category"); category != "" {
		categoryID = &category
	}

	videos, err := h.media.ListVideos(r.Context(), categoryID, limit, offset)
	if err != nil {
		h.writeBatchError(w, err, "Ошибка получения списка видео")
		return
	}

	items := make([]videoResponse, len(videos))
	for i, v := range videos {
		items[i] = videoResponse{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoURL:    v.VideoURL,
			CategoryID:  v.CategoryID,
			CreatedAt:   v.CreatedAt.UTC().Format(timeFormat),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}
