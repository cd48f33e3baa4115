// login.go — сервис входа в админку.
// Машина состояний: AwaitingCredentials → Verifying → Granted | Denied.
// Все отказы терминальны для запроса; повторов внутри сервиса нет.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
)

// LoginService — оркестрация проверки учётных данных, выпуска токена
// и роли. Привязку токена к cookie выполняет HTTP-слой.
type LoginService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewLoginService создаёт сервис входа.
func NewLoginService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	logger *slog.Logger,
) *LoginService {
	return &LoginService{
		users:  users,
		tokens: tokens,
		logger: logger.With(slog.String("component", "login_service")),
	}
}

// Login проверяет учётные данные и выпускает сессионный токен.
// Возвращаемые ошибки:
//   - ErrValidation — email или пароль не заданы;
//   - ErrStoreUnavailable — база данных недоступна (ошибка конфигурации,
//     отличима от неверных учётных данных);
//   - ErrInvalidCredentials — email не найден ИЛИ пароль не совпал,
//     без различия между этими случаями;
//   - ErrForbidden — учётные данные верны, но роль не ADMIN.
func (s *LoginService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email и пароль обязательны", ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Не раскрываем, существует ли email: тот же ответ, что и
			// при неверном пароле.
			s.logger.Warn("Попытка входа с неизвестным email")
			return nil, "", ErrInvalidCredentials
		}
		if errors.Is(err, repository.ErrUnavailable) {
			s.logger.Error("База данных недоступна при входе", slog.String("error", err.Error()))
			return nil, "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, "", fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// Повреждённый хеш — внутренняя ошибка, не проблема клиента
		return nil, "", fmt.Errorf("ошибка проверки пароля: %w", err)
	}
	if !ok {
		s.logger.Warn("Попытка входа с неверным паролем", slog.String("email", user.Email))
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsAdmin() {
		s.logger.Warn("Отказ в доступе: роль не ADMIN",
			slog.String("email", user.Email),
			slog.String("role", user.Role),
		)
		return nil, "", fmt.Errorf("%w: требуется роль ADMIN", ErrForbidden)
	}

	token, err := s.tokens.Sign(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка выпуска токена: %w", err)
	}

	s.logger.Info("Администратор вошёл в систему", slog.String("email", user.Email))
	return user, token, nil
}
