// categories.go — обработчик /api/categories.
// Публичный список категорий галереи.
package handlers

import (
	"net/http"
)

// categoryResponse — публичное представление категории.
type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListCategories — GET /api/categories.
func (h *APIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.media.ListCategories(r.Context())
	if err != nil {
		h.writeBatchError(w, err, "Ошибка получения списка категорий")
		return
	}

	items := make([]categoryResponse, len(categories))
	for i, c := range categories {
		items[i] = categoryResponse{
			ID:   c.ID,
			Name: c.Name,
			Slug: c.Slug,
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
