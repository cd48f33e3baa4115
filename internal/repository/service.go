package repository

import (
	"context"
	"fmt"

	"github.com/bigkaa/lumina-studio/internal/domain/model"
)

// ServiceRepository — доступ к таблице services.
type ServiceRepository interface {
	// Create создаёт запись услуги.
	Create(ctx context.Context, s *model.Service) error
	// List возвращает все услуги по алфавиту.
	List(ctx context.Context) ([]*model.Service, error)
}

// serviceRepo — реализация ServiceRepository.
type serviceRepo struct {
	db DBTX
}

// NewServiceRepository создаёт репозиторий услуг.
func NewServiceRepository(db DBTX) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, s *model.Service) error {
	query := `
		INSERT INTO services (name, description, price_from, price_to)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		s.Name, s.Description, s.PriceFrom, s.PriceTo,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка создания услуги: %w", classify(err))
	}
	return nil
}

func (r *serviceRepo) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, price_from, price_to, created_at
		FROM services
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка услуг: %w", classify(err))
	}
	defer rows.Close()

	var result []*model.Service
	for rows.Next() {
		s := &model.Service{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.PriceFrom, &s.PriceTo, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования услуги: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
