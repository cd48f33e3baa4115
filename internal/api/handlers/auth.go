// auth.go — обработчики /api/auth endpoints.
// Вход по email и паролю, выход, текущая сессия.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/api/middleware"
	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/service"
)

// loginRequest — тело запроса POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse — публичное представление пользователя.
// Хэш пароля наружу не отдаётся.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// loginResponse — тело ответа успешного входа.
type loginResponse struct {
	Success bool         `json:"success"`
	User    userResponse `json:"user"`
}

// Login — POST /api/auth/login.
// Проверяет учётные данные и устанавливает сессионный cookie.
// Ответ 401 одинаков для несуществующего email и неверного пароля.
func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	user, token, err := h.login.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			apierrors.ValidationError(w, "Требуются email и пароль")
		case errors.Is(err, service.ErrStoreUnavailable):
			apierrors.StoreUnavailable(w, "Сервис временно недоступен")
		case errors.Is(err, service.ErrInvalidCredentials):
			apierrors.Unauthorized(w, "Неверный email или пароль")
		case errors.Is(err, service.ErrForbidden):
			apierrors.Forbidden(w, "Требуются права администратора")
		default:
			h.logger.Error("Ошибка входа", "error", err)
			apierrors.InternalError(w, "Внутренняя ошибка сервера")
		}
		return
	}

	h.cookies.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		User: userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	})
}

// Logout — POST /api/auth/logout.
// Удаляет сессионный cookie и отзывает токен (если настроен Redis).
// Идемпотентен: запрос без сессии тоже возвращает 200.
func (h *APIHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h.revoked != nil {
		if tokenString, err := auth.TokenFromRequest(r); err == nil && tokenString != "" {
			if claims, verifyErr := h.tokens.Verify(tokenString); verifyErr == nil {
				ttl := time.Until(claims.ExpiresAt.Time)
				if revokeErr := h.revoked.Revoke(r.Context(), claims.ID, ttl); revokeErr != nil {
					h.logger.Warn("Ошибка отзыва токена", "error", revokeErr)
				}
			}
		}
	}

	h.cookies.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Me — GET /api/auth/me.
// Возвращает данные текущей сессии. Требует SessionAuth middleware.
func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	})
}
