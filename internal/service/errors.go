// errors.go — типизированная таксономия ошибок сервисного слоя.
// Ошибки конструируются в точке возникновения; классификация по тексту
// сообщений нигде не выполняется.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation — некорректные входные данные (400).
	ErrValidation = errors.New("ошибка валидации")
	// ErrInvalidCredentials — неверные учётные данные (401).
	// Единый ответ для несуществующего email и неверного пароля —
	// перечисление пользователей невозможно.
	ErrInvalidCredentials = errors.New("неверные учётные данные")
	// ErrForbidden — учётные данные верны, но роль не ADMIN (403).
	ErrForbidden = errors.New("недостаточно прав")
	// ErrStoreUnavailable — база данных не настроена или недоступна (503).
	// Ошибка конфигурации/инфраструктуры, не учётных данных.
	ErrStoreUnavailable = errors.New("база данных недоступна")
	// ErrBatchExhausted — ни один файл батча не был сохранён в хранилище;
	// персистенция не выполнялась.
	ErrBatchExhausted = errors.New("ни один файл не был загружен")
)

// StorageError — ошибка загрузки одного файла в хранилище.
// Восстанавливается локально: файл пропускается, батч продолжается.
type StorageError struct {
	// Filename — оригинальное имя файла
	Filename string
	// Key — ключ объекта, под которым выполнялась загрузка
	Key string
	// Err — причина
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ошибка загрузки файла %q (ключ %s): %v", e.Filename, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PersistenceError — ошибка записи метаданных после успешного сохранения
// объектов в хранилище. Объекты остаются в хранилище как сироты —
// несогласованность принята и не устраняется автоматически.
type PersistenceError struct {
	// Stored — количество объектов, уже сохранённых в хранилище
	Stored int
	// Err — причина
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ошибка сохранения метаданных (%d объектов уже в хранилище): %v", e.Stored, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
