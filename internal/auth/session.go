// session.go — привязка сессионного токена к HTTP cookie.
package auth

import (
	"errors"
	"net/http"
)

// Имя сессионного cookie админки.
const SessionCookieName = "admin_token"

// Максимальный возраст сессионного cookie (24 часа, как и срок токена).
const SessionCookieMaxAge = 24 * 60 * 60

// CookieGateway устанавливает и читает сессионный cookie.
// httpOnly всегда; Secure — только в production-окружении.
type CookieGateway struct {
	secure bool
}

// NewCookieGateway создаёт шлюз сессионных cookie.
// secure — использовать Secure flag (production).
func NewCookieGateway(secure bool) *CookieGateway {
	return &CookieGateway{secure: secure}
}

// SetSessionCookie прикрепляет токен к ответу в виде сессионного cookie.
func (g *CookieGateway) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   SessionCookieMaxAge,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет сессионный cookie из ответа (logout).
func (g *CookieGateway) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest извлекает сессионный токен из cookie запроса.
// Возвращает "" без ошибки, если cookie отсутствует.
func TokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", nil
		}
		return "", err
	}
	return cookie.Value, nil
}
