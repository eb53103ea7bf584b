package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"streaming-backend/internal/database"
	"streaming-backend/internal/models"

	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) error
	FindByID(ctx context.Context, id uint) (*models.Person, error)
	FindAll(ctx context.Context, search string) ([]models.Person, error)
}

type personRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewPersonRepository(db *database.Database) PersonRepository {
	return &personRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *personRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *personRepository) Create(ctx context.Context, person *models.Person) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepository) FindByID(ctx context.Context, id uint) (*models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var person models.Person
	err := r.db.WithContext(ctx).First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) FindAll(ctx context.Context, search string) ([]models.Person, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Order("name")
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var people []models.Person
	err := query.Find(&people).Error
	return people, err
}
