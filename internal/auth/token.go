// token.go — выпуск и проверка сессионных токенов.
// HS256 с локальным секретом; токен самодостаточен — серверного
// состояния сессии нет, валидность определяется подписью и сроком.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL — срок действия сессионного токена (ровно 24 часа от выпуска).
const TokenTTL = 24 * time.Hour

// ErrTokenInvalid — токен не прошёл проверку (подпись, срок, формат).
// Причина не детализируется наружу.
var ErrTokenInvalid = errors.New("сессионный токен недействителен")

// Claims — данные сессии, встроенные в токен.
type Claims struct {
	// UserID — UUID пользователя
	UserID string `json:"userId"`
	// Email — адрес электронной почты
	Email string `json:"email"`
	// Role — роль пользователя (ADMIN)
	Role string `json:"role"`

	jwt.RegisteredClaims
}

// TokenService — выпуск и проверка сессионных токенов.
// Выпуск и проверка используют один источник времени (now).
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// NewTokenService создаёт сервис токенов с секретом для HMAC-SHA256.
func NewTokenService(secret string) *TokenService {
	return NewTokenServiceWithClock(secret, time.Now)
}

// NewTokenServiceWithClock создаёт сервис токенов с указанным источником
// времени. Используется в тестах для проверки границы срока действия.
func NewTokenServiceWithClock(secret string, now func() time.Time) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		now:    now,
	}
}

// Sign выпускает подписанный токен с identity-claims и сроком действия
// ровно TokenTTL от момента выпуска. jti нужен для списка отзыва.
func (s *TokenService) Sign(userID, email, role string) (string, error) {
	issuedAt := s.now()

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись и срок действия токена.
// Токены принимаются до expiresAt; компенсации рассинхронизации часов нет —
// проверяющий использует тот же источник времени, что и выпускающий.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	return claims, nil
}
