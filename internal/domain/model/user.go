// Пакет model — доменные модели Lumina Studio.
package model

import "time"

// Роли пользователей.
const (
	// RoleAdmin — единственная роль с доступом в админку.
	RoleAdmin = "ADMIN"
	// RoleUser — обычный пользователь, в админку не допускается.
	RoleUser = "USER"
)

// User — учётная запись из таблицы users.
// Создаётся сидером, ядром никогда не изменяется.
type User struct {
	// ID — UUID записи
	ID string
	// Email — адрес электронной почты (уникальный)
	Email string
	// Name — отображаемое имя
	Name string
	// PasswordHash — bcrypt-хеш пароля
	PasswordHash string
	// Role — роль (ADMIN, USER)
	Role string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// IsAdmin сообщает, допускается ли пользователь в админку.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
