package model

import "time"

// Category — категория галереи (таблица categories).
type Category struct {
	// ID — UUID записи
	ID string
	// Name — отображаемое имя категории
	Name string
	// Slug — уникальный URL-идентификатор
	Slug string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// Photo — фотография галереи (таблица photos).
// Одна запись на каждый успешно сохранённый в хранилище объект.
type Photo struct {
	// ID — UUID записи
	ID string
	// Title — отображаемый заголовок
	Title string
	// Description — описание
	Description string
	// ImageURL — публичный URL объекта в хранилище
	ImageURL string
	// CategoryID — UUID категории
	CategoryID string
	// IsFeatured — показывать на главной странице
	IsFeatured bool
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// Video — видеоролик галереи (таблица videos).
type Video struct {
	// ID — UUID записи
	ID string
	// Title — отображаемый заголовок
	Title string
	// Description — описание
	Description string
	// VideoURL — публичный URL объекта в хранилище
	VideoURL string
	// CategoryID — UUID категории
	CategoryID string
	// CreatedAt — время создания записи
	CreatedAt time.Time
}

// Service — услуга студии (таблица services).
type Service struct {
	// ID — UUID записи
	ID string
	// Name — название услуги
	Name string
	// Description — описание
	Description string
	// PriceFrom — нижняя граница цены (nil — не указана)
	PriceFrom *float64
	// PriceTo — верхняя граница цены (nil — не указана)
	PriceTo *float64
	// CreatedAt — время создания записи
	CreatedAt time.Time
}
