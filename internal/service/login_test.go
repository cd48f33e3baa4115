package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
)

// fakeUserRepo — in-memory реализация UserRepository для тестов.
type fakeUserRepo struct {
	users map[string]*model.User
	// err, если задана, возвращается из GetByEmail вместо данных
	err error
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *model.User) error {
	f.users[u.Email] = u
	return nil
}

// newLoginFixture подготавливает сервис входа с одним администратором
// и одним обычным пользователем.
func newLoginFixture(t *testing.T) (*LoginService, *fakeUserRepo, *auth.TokenService) {
	t.Helper()

	adminHash, err := auth.HashPassword("admin-pass")
	if err != nil {
		t.Fatalf("подготовка хеша: %v", err)
	}
	userHash, err := auth.HashPassword("user-pass")
	if err != nil {
		t.Fatalf("подготовка хеша: %v", err)
	}

	repo := &fakeUserRepo{users: map[string]*model.User{
		"admin@lumina.com": {
			ID:           "admin-id",
			Email:        "admin@lumina.com",
			Name:         "Admin",
			PasswordHash: adminHash,
			Role:         model.RoleAdmin,
		},
		"user@lumina.com": {
			ID:           "user-id",
			Email:        "user@lumina.com",
			Name:         "User",
			PasswordHash: userHash,
			Role:         model.RoleUser,
		},
	}}

	tokens := auth.NewTokenService("test-secret")
	return NewLoginService(repo, tokens, slog.Default()), repo, tokens
}

func TestLogin_Success(t *testing.T) {
	svc, _, tokens := newLoginFixture(t)

	user, token, err := svc.Login(context.Background(), "admin@lumina.com", "admin-pass")
	if err != nil {
		t.Fatalf("Login() вернул ошибку: %v", err)
	}
	if user.ID != "admin-id" {
		t.Errorf("user.ID = %q, ожидается admin-id", user.ID)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("выпущенный токен не прошёл проверку: %v", err)
	}
	if claims.UserID != "admin-id" {
		t.Errorf("claims.UserID = %q, ожидается admin-id", claims.UserID)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("claims.Role = %q, ожидается ADMIN", claims.Role)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _, _ := newLoginFixture(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"нет email", "", "admin-pass"},
		{"нет пароля", "admin@lumina.com", ""},
		{"нет обоих", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Login() = %v, ожидается ErrValidation", err)
			}
		})
	}
}

// Неизвестный email и неверный пароль дают одну и ту же ошибку:
// ответ не раскрывает, существует ли учётная запись.
func TestLogin_UniformInvalidCredentials(t *testing.T) {
	svc, _, _ := newLoginFixture(t)

	_, _, errUnknown := svc.Login(context.Background(), "nobody@lumina.com", "whatever")
	_, _, errWrongPass := svc.Login(context.Background(), "admin@lumina.com", "wrong-pass")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("неизвестный email: %v, ожидается ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Errorf("неверный пароль: %v, ожидается ErrInvalidCredentials", errWrongPass)
	}
	if errUnknown.Error() != errWrongPass.Error() {
		t.Errorf("ответы различаются: %q vs %q", errUnknown.Error(), errWrongPass.Error())
	}
}

// Роль не ADMIN отличима от неверных учётных данных.
func TestLogin_NonAdminForbidden(t *testing.T) {
	svc, _, _ := newLoginFixture(t)

	_, _, err := svc.Login(context.Background(), "user@lumina.com", "user-pass")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("Login() = %v, ожидается ErrForbidden", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("ErrForbidden не должен совпадать с ErrInvalidCredentials")
	}
}

// Недоступность базы отличима от неверных учётных данных.
func TestLogin_StoreUnavailable(t *testing.T) {
	svc, repo, _ := newLoginFixture(t)
	repo.err = repository.ErrUnavailable

	_, _, err := svc.Login(context.Background(), "admin@lumina.com", "admin-pass")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Login() = %v, ожидается ErrStoreUnavailable", err)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Error("ErrStoreUnavailable не должен совпадать с ErrInvalidCredentials")
	}
}
