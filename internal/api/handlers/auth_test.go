package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigkaa/lumina-studio/internal/auth"
	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
	"github.com/bigkaa/lumina-studio/internal/service"
)

// fakeUserRepo — in-memory реализация UserRepository для тестов handlers.
type fakeUserRepo struct {
	users map[string]*model.User
	err   error
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

// newAuthFixture собирает APIHandler с login-сервисом поверх fake-репозитория.
func newAuthFixture(t *testing.T) (*APIHandler, *fakeUserRepo) {
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
			ID: "admin-id", Email: "admin@lumina.com", Name: "Admin",
			PasswordHash: adminHash, Role: model.RoleAdmin,
		},
		"user@lumina.com": {
			ID: "user-id", Email: "user@lumina.com", Name: "User",
			PasswordHash: userHash, Role: model.RoleUser,
		},
	}}

	logger := slog.Default()
	tokens := auth.NewTokenService("test-secret")
	cookies := auth.NewCookieGateway(false)
	loginSvc := service.NewLoginService(repo, tokens, logger)

	handler := NewAPIHandler(nil, loginSvc, nil, nil, tokens, cookies, nil, logger)
	return handler, repo
}

// postLogin выполняет POST /api/auth/login с указанным JSON-телом.
func postLogin(handler *APIHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Login(rec, req)
	return rec
}

// findCookie ищет cookie по имени в записанном ответе.
func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SuccessSetsCookie(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postLogin(handler, `{"email":"admin@lumina.com","password":"admin-pass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200; тело: %s", rec.Code, rec.Body.String())
	}

	c := findCookie(rec, auth.SessionCookieName)
	if c == nil {
		t.Fatal("сессионный cookie не установлен")
	}
	if c.Value == "" {
		t.Error("cookie без значения токена")
	}
	if !c.HttpOnly {
		t.Error("cookie без HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("Path = %q, ожидается /", c.Path)
	}
	if c.MaxAge != auth.SessionCookieMaxAge {
		t.Errorf("MaxAge = %d, ожидается %d", c.MaxAge, auth.SessionCookieMaxAge)
	}

	if !strings.Contains(rec.Body.String(), `"id":"admin-id"`) {
		t.Errorf("тело ответа не содержит пользователя: %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("тело ответа содержит поле password")
	}
}

func TestLogin_MissingFields(t *testing.T) {
	handler, _ := newAuthFixture(t)

	tests := []struct {
		name string
		body string
	}{
		{"нет email", `{"password":"admin-pass"}`},
		{"нет пароля", `{"email":"admin@lumina.com"}`},
		{"пустое тело", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postLogin(handler, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("статус = %d, ожидается 400", rec.Code)
			}
		})
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postLogin(handler, `{не json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус = %d, ожидается 400", rec.Code)
	}
}

// Ответы для неизвестного email и неверного пароля байт-в-байт одинаковы.
func TestLogin_UniformUnauthorizedResponse(t *testing.T) {
	handler, _ := newAuthFixture(t)

	recUnknown := postLogin(handler, `{"email":"nobody@lumina.com","password":"x"}`)
	recWrongPass := postLogin(handler, `{"email":"admin@lumina.com","password":"wrong"}`)

	if recUnknown.Code != http.StatusUnauthorized {
		t.Errorf("неизвестный email: статус = %d, ожидается 401", recUnknown.Code)
	}
	if recWrongPass.Code != http.StatusUnauthorized {
		t.Errorf("неверный пароль: статус = %d, ожидается 401", recWrongPass.Code)
	}
	if recUnknown.Body.String() != recWrongPass.Body.String() {
		t.Errorf("тела ответов различаются:\n%s\n%s", recUnknown.Body.String(), recWrongPass.Body.String())
	}
	if findCookie(recUnknown, auth.SessionCookieName) != nil {
		t.Error("cookie установлен при отказе в аутентификации")
	}
}

func TestLogin_NonAdminForbidden(t *testing.T) {
	handler, _ := newAuthFixture(t)

	rec := postLogin(handler, `{"email":"user@lumina.com","password":"user-pass"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("статус = %d, ожидается 403", rec.Code)
	}
	if findCookie(rec, auth.SessionCookieName) != nil {
		t.Error("cookie установлен для пользователя без прав")
	}
}

func TestLogin_StoreUnavailable(t *testing.T) {
	handler, repo := newAuthFixture(t)
	repo.err = repository.ErrUnavailable

	rec := postLogin(handler, `{"email":"admin@lumina.com","password":"admin-pass"}`)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("статус = %d, ожидается 503", rec.Code)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	handler, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("статус = %d, ожидается 200", rec.Code)
	}

	c := findCookie(rec, auth.SessionCookieName)
	if c == nil {
		t.Fatal("ответ не содержит удаляющий cookie")
	}
	if c.Value != "" || c.MaxAge >= 0 {
		t.Errorf("cookie не удалён: Value=%q MaxAge=%d", c.Value, c.MaxAge)
	}
}
