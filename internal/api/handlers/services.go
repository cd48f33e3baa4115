// services.go — обработчики /api/services endpoints.
// Список услуг студии и создание новой услуги.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// createServiceRequest — тело запроса POST /api/services.
type createServiceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceFrom   *float64 `json:"priceFrom"`
	PriceTo     *float64 `json:"priceTo"`
}

// serviceResponse — публичное представление услуги.
type serviceResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	PriceFrom   *float64 `json:"priceFrom,omitempty"`
	PriceTo     *float64 `json:"priceTo,omitempty"`
	CreatedAt   string   `json:"createdAt"`
}

// CreateService — POST /api/services.
// Доступ: ADMIN (через SessionAuth + RequireAdmin).
func (h *APIHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req createServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		apierrors.ValidationError(w, "Требуется название услуги")
		return
	}
	if req.PriceFrom != nil && req.PriceTo != nil && *req.PriceFrom > *req.PriceTo {
		apierrors.ValidationError(w, "priceFrom не может превышать priceTo")
		return
	}

	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		PriceFrom:   req.PriceFrom,
		PriceTo:     req.PriceTo,
	}

	if err := h.media.CreateService(r.Context(), svc); err != nil {
		h.writeBatchError(w, err, "Ошибка создания услуги")
		return
	}

	writeJSON(w, http.StatusCreated, mapService(svc))
}

// ListServices — GET /api/services.
func (h *APIHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.media.ListServices(r.Context())
	if err != nil {
		h.writeBatchError(w, err, "Ошибка получения списка услуг")
		return
	}

	items := make([]serviceResponse, len(services))
	for i, s := range services {
		items[i] = mapService(s)
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// mapService маппит доменную модель услуги в ответ API.
func mapService(s *model.Service) serviceResponse {
	return serviceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		PriceFrom:   s.PriceFrom,
		PriceTo:     s.PriceTo,
		CreatedAt:   s.CreatedAt.UTC().Format(timeFormat),
	}
}
