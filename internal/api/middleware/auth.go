// auth.go — middleware сессионной аутентификации Lumina Studio.
// Извлекает токен из cookie admin_token, валидирует подпись (HS256),
// проверяет отзыв токена (если настроен Redis) и помещает claims в контекст.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/lumina-studio/internal/api/errors"
	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

const (
	// ContextKeyClaims — извлечённые claims сессии в контексте запроса.
	ContextKeyClaims contextKey = "session_claims"
)

// SessionAuth — middleware аутентификации по сессионной cookie.
type SessionAuth struct {
	tokens *auth.TokenService
	// revoked — список отозванных токенов; nil, если Redis не настроен
	revoked *auth.RevocationList
	logger  *slog.Logger
}

// NewSessionAuth создаёт middleware сессионной аутентификации.
// revoked может быть nil: тогда токены действуют до истечения срока.
func NewSessionAuth(tokens *auth.TokenService, revoked *auth.RevocationList, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		tokens:  tokens,
		revoked: revoked,
		logger:  logger.With(slog.String("component", "session_auth")),
	}
}

// Middleware возвращает HTTP middleware для аутентификации админки.
// Запросы без валидной сессии получают 401 в стандартном формате ошибок.
func (s *SessionAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := auth.TokenFromRequest(r)
			if err != nil || tokenString == "" {
				apierrors.Unauthorized(w, "Требуется аутентификация")
				return
			}

			claims, err := s.tokens.Verify(tokenString)
			if err != nil {
				s.logger.Debug("Валидация сессионного токена не пройдена",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}

			if s.revoked != nil {
				revoked, revErr := s.revoked.IsRevoked(r.Context(), claims.ID)
				if revErr != nil {
					// Redis недоступен: токен с валидной подписью пропускается,
					// сессия остаётся stateless до восстановления Redis.
					s.logger.Warn("Ошибка проверки отзыва токена",
						slog.String("error", revErr.Error()),
					)
				} else if revoked {
					apierrors.Unauthorized(w, "Сессия завершена")
					return
				}
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin возвращает middleware, требующий роль ADMIN.
// Должен использоваться ПОСЛЕ SessionAuth.Middleware().
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				apierrors.Unauthorized(w, "Отсутствуют claims в контексте")
				return
			}

			if claims.Role != model.RoleAdmin {
				apierrors.Forbidden(w, "Недостаточно прав: требуется роль ADMIN")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// --- Context helpers ---

// ClaimsFromContext извлекает claims сессии из контекста запроса.
// Возвращает nil, если claims не найдены.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ContextKeyClaims).(*auth.Claims)
	return claims
}

// UserIDFromContext извлекает идентификатор пользователя из контекста запроса.
// Возвращает пустую строку, если claims не найдены.
func UserIDFromContext(ctx context.Context) string {
	claims := ClaimsFromContext(ctx)
	if claims == nil {
		return ""
	}
	return claims.UserID
}
