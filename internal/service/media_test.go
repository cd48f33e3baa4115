package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
	"github.com/bigkaa/lumina-studio/internal/repository"
)

func TestBatchTitles(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		n      int
		want   []string
	}{
		{"без префикса", "", 3, []string{"", "", ""}},
		{"один файл без номера", "Wedding Shoot", 1, []string{"Wedding Shoot"}},
		{"нумерация с единицы", "Wedding Shoot", 3, []string{"Wedding Shoot 1", "Wedding Shoot 2", "Wedding Shoot 3"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := batchTitles(tc.prefix, tc.n)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, ожидается %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("titles[%d] = %q, ожидается %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

// fakeCategoryRepo — реализация CategoryRepository для тестов.
type fakeCategoryRepo struct {
	known map[string]*model.Category
	err   error
	// gets — количество обращений к GetByID
	gets int
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]*model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*model.Category, 0, len(f.known))
	for _, c := range f.known {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	f.gets++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.known[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) Upsert(_ context.Context, c *model.Category) error {
	f.known[c.ID] = c
	return nil
}

func newMediaFixture(categories repository.CategoryRepository) *MediaService {
	return NewMediaService(nil, nil, categories, nil, nil, slog.Default())
}

func TestValidateCategory(t *testing.T) {
	const knownID = "2b1f6a04-8c3d-4e5f-9a7b-1c2d3e4f5a6b"

	repo := &fakeCategoryRepo{known: map[string]*model.Category{
		knownID: {ID: knownID, Name: "Wedding", Slug: "wedding"},
	}}
	svc := newMediaFixture(repo)

	t.Run("существующая категория", func(t *testing.T) {
		if err := svc.ValidateCategory(context.Background(), knownID); err != nil {
			t.Errorf("ValidateCategory() вернул ошибку: %v", err)
		}
	})

	t.Run("пустая категория", func(t *testing.T) {
		if err := svc.ValidateCategory(context.Background(), ""); !errors.Is(err, ErrValidation) {
			t.Errorf("ValidateCategory() = %v, ожидается ErrValidation", err)
		}
	})

	t.Run("некорректный UUID", func(t *testing.T) {
		gets := repo.gets
		if err := svc.ValidateCategory(context.Background(), "nope"); !errors.Is(err, ErrValidation) {
			t.Errorf("ValidateCategory() = %v, ожидается ErrValidation", err)
		}
		if repo.gets != gets {
			t.Errorf("некорректный UUID дошёл до запроса в БД")
		}
	})

	t.Run("несуществующая категория", func(t *testing.T) {
		if err := svc.ValidateCategory(context.Background(), "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"); !errors.Is(err, ErrValidation) {
			t.Errorf("ValidateCategory() = %v, ожидается ErrValidation", err)
		}
	})

	t.Run("база недоступна", func(t *testing.T) {
		repo.err = repository.ErrUnavailable
		defer func() { repo.err = nil }()

		if err := svc.ValidateCategory(context.Background(), knownID); !errors.Is(err, ErrStoreUnavailable) {
			t.Errorf("ValidateCategory() = %v, ожидается ErrStoreUnavailable", err)
		}
	})
}
