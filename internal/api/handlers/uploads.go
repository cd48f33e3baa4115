// uploads.go — обработчик POST /api/admin/uploads.
// Серверная загрузка медиа: multipart-файлы уходят в объектное хранилище,
// затем одной операцией записываются метаданные.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/service"
	"github.com/bigkaa/lumina-studio/internal/storage"
)

// Ограничение на размер multipart-формы, удерживаемой в памяти.
// Остальное net/http скидывает во временные файлы.
const uploadMemoryLimit = 32 << 20 // 32 MiB

// uploadResponse — тело ответа на батч-загрузку.
type uploadResponse struct {
	Success   bool     `json:"success"`
	Requested int      `json:"requested"`
	Stored    int      `json:"stored"`
	Failed    int      `json:"failed"`
	Created   int      `json:"created"`
	URLs      []string `json:"urls"`
}

// UploadMedia — POST /api/admin/uploads.
// Принимает multipart/form-data: files (1..N), mediaType (photos|videos),
// title, description, categoryId, isFeatured.
// Отказавшие файлы пропускаются; ответ сообщает фактическое число успехов.
// Доступ: ADMIN (через SessionAuth + RequireAdmin).
func (h *APIHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploadMemoryLimit); err != nil {
		apierrors.ValidationError(w, "Некорректная multipart-форма: "+err.Error())
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	mediaType := r.FormValue("mediaType")
	if mediaType != "photos" && mediaType != "videos" {
		apierrors.ValidationError(w, "Параметр mediaType должен быть photos или videos")
		return
	}

	isFeatured := false
	if raw := r.FormValue("isFeatured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.ValidationError(w, "Параметр isFeatured должен быть true или false")
			return
		}
		isFeatured = parsed
	}

	meta := service.BatchMetadata{
		TitlePrefix: r.FormValue("title"),
		Description: r.FormValue("description"),
		CategoryID:  r.FormValue("categoryId"),
		IsFeatured:  isFeatured,
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		apierrors.ValidationError(w, "Требуется хотя бы один файл в поле files")
		return
	}

	files := make([]service.UploadFile, 0, len(fileHeaders))
	opened := make([]interface{ Close() error }, 0, len(fileHeaders))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			apierrors.ValidationError(w, "Ошибка чтения файла "+fh.Filename+": "+err.Error())
			return
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Body:        f,
		})
	}

	var (
		result *service.BatchResult
		err    error
	)
	if mediaType == "photos" {
		result, err = h.uploads.UploadPhotos(r.Context(), files, meta)
	} else {
		result, err = h.uploads.UploadVideos(r.Context(), files, meta)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, err.Error())
		case errors.Is(err, storage.ErrNotConfigured):
			apierrors.StorageUnavailable(w, "Объектное хранилище не настроено")
		case errors.Is(err, service.ErrBatchExhausted):
			apierrors.StorageUnavailable(w, "Ни один файл не удалось сохранить в хранилище")
		case errors.Is(err, service.ErrStoreUnavailable):
			apierrors.StoreUnavailable(w, "Сервис временно недоступен")
		default:
			h.logger.Error("Ошибка обработки батча загрузки", "error", err)
			apierrors.InternalError(w, "Внутренняя ошибка сервера")
		}
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		Success:   true,
		Requested: result.Requested,
		Stored:    result.Stored,
		Failed:    result.Failed,
		Created:   result.Created,
		URLs:      result.URLs,
	})
}
