// Пакет auth — аутентификация админки: проверка пароля (bcrypt),
// подписанные сессионные токены (HS256), сессионный cookie и
// опциональный список отозванных токенов (Redis).
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost — стоимость хеширования (соответствует сидеру).
const bcryptCost = 12

// VerifyPassword сравнивает пароль с bcrypt-хешем.
// Несовпадение — не ошибка: возвращается (false, nil).
// Ошибка возвращается только при некорректном формате хеша.
func VerifyPassword(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("некорректный формат хеша пароля: %w", err)
}

// HashPassword хеширует пароль через bcrypt.
// Используется сидером при создании учётной записи администратора.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return string(hash), nil
}
