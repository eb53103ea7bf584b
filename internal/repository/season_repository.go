package repository

import (
	"context"
	"errors"
	"time"

	"streaming-backend/internal/database"
	"streaming-backend/internal/models"

	"gorm.io/gorm"
)

type SeasonRepository interface {
	CreateSeason(ctx context.Context, season *models.Season) error
	CreateEpisode(ctx context.Context, episode *models.Episode) error
	FindSeasonByID(ctx context.Context, id uint) (*models.Season, error)
	FindSeasons(ctx context.Context, contentID *uint) ([]models.Season, error)
	FindEpisodeByID(ctx context.Context, id uint) (*models.Episode, error)
	FindEpisodes(ctx context.Context, seasonID *uint) ([]models.Episode, error)
}

type seasonRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewSeasonRepository(db *database.Database) SeasonRepository {
	return &seasonRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *seasonRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *seasonRepository) CreateSeason(ctx context.Context, season *models.Season) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(season).Error
}

func (r *seasonRepository) CreateEpisode(ctx context.Context, episode *models.Episode) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(episode).Error
}

func (r *seasonRepository) FindSeasonByID(ctx context.Context, id uint) (*models.Season, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var season models.Season
	err := r.db.WithContext(ctx).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episodes.episode_number")
		}).
		First(&season, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepository) FindSeasons(ctx context.Context, contentID *uint) ([]models.Season, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episodes.episode_number")
		}).
		Order("season_number")
	if contentID != nil {
		query = query.Where("content_id = ?", *contentID)
	}

	var seasons []models.Season
	err := query.Find(&seasons).Error
	return seasons, err
}

func (r *seasonRepository) FindEpisodeByID(ctx context.Context, id uint) (*models.Episode, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var episode models.Episode
	err := r.db.WithContext(ctx).First(&episode, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &episode, nil
}

func (r *seasonRepository) FindEpisodes(ctx context.Context, seasonID *uint) ([]models.Episode, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Order("episode_number")
	if seasonID != nil {
		query = query.Where("season_id = ?", *seasonID)
	}

	var episodes []models.Episode
	err := query.Find(&episodes).Error
	return episodes, err
}
