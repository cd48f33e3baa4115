package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

// timeoutError — минимальная реализация net.Error для теста классификации.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	t.Run("nil остаётся nil", func(t *testing.T) {
		if got := classify(nil); got != nil {
			t.Errorf("classify(nil) = %v, ожидается nil", got)
		}
	})

	t.Run("нарушение уникальности — ErrConflict", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
		if got := classify(pgErr); !errors.Is(got, ErrConflict) {
			t.Errorf("classify(23505) = %v, ожидается ErrConflict", got)
		}
	})

	t.Run("обёрнутое нарушение уникальности — ErrConflict", func(t *testing.T) {
		wrapped := fmt.Errorf("ошибка вставки: %w", &pgconn.PgError{Code: "23505"})
		if got := classify(wrapped); !errors.Is(got, ErrConflict) {
			t.Errorf("classify(wrapped 23505) = %v, ожидается ErrConflict", got)
		}
	})

	t.Run("сетевая ошибка — ErrUnavailable", func(t *testing.T) {
		if got := classify(timeoutError{}); !errors.Is(got, ErrUnavailable) {
			t.Errorf("classify(net.Error) = %v, ожидается ErrUnavailable", got)
		}
	})

	t.Run("прочие ошибки PostgreSQL не классифицируются", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax"}
		got := classify(pgErr)
		if errors.Is(got, ErrConflict) || errors.Is(got, ErrUnavailable) {
			t.Errorf("classify(22P02) = %v, классификация не ожидается", got)
		}
	})
}
