package repository

import (
	"context"
	"errors"
	"time"

	"streaming-backend/internal/database"
	"streaming-backend/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository stores the per-user records referencing catalog
// entities. Lookup methods return nil without error when no record matches so
// the write path can decide between insert and update.
type EngagementRepository interface {
	FindHistoryByID(ctx context.Context, id uint) (*models.WatchHistory, error)
	FindHistoryByUser(ctx context.Context, userID uint) ([]models.WatchHistory, error)
	FindHistoryForContent(ctx context.Context, userID, contentID uint) (*models.WatchHistory, error)
	FindHistoryForEpisode(ctx context.Context, userID, episodeID uint) (*models.WatchHistory, error)
	CreateHistory(ctx context.Context, entry *models.WatchHistory) error
	UpdateHistory(ctx context.Context, entry *models.WatchHistory) error

	FindFavoriteByID(ctx context.Context, id uint) (*models.Favorite, error)
	FindFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error)
	FindFavorite(ctx context.Context, userID, contentID uint) (*models.Favorite, error)
	CreateFavorite(ctx context.Context, favorite *models.Favorite) error
	DeleteFavorite(ctx context.Context, id uint) error

	FindRatingByID(ctx context.Context, id uint) (*models.Rating, error)
	FindRatingsByUser(ctx context.Context, userID uint) ([]models.Rating, error)
	FindRatingsByContent(ctx context.Context, contentID uint) ([]models.Rating, error)
	FindRating(ctx context.Context, userID, contentID uint) (*models.Rating, error)
	CreateRating(ctx context.Context, rating *models.Rating) error
	UpdateRating(ctx context.Context, rating *models.Rating) error
}

type engagementRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewEngagementRepository(db *database.Database) EngagementRepository {
	return &engagementRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *engagementRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *engagementRepository) FindHistoryByID(ctx context.Context, id uint) (*models.WatchHistory, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entry models.WatchHistory
	err := r.db.WithContext(ctx).
		Preload("Content.Genres").
		Preload("Episode").
		First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *engagementRepository) FindHistoryByUser(ctx context.Context, userID uint) ([]models.WatchHistory, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entries []models.WatchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Preload("Content.Genres").
		Preload("Episode").
		Find(&entries).Error
	return entries, err
}

// FindHistoryForContent matches only rows that target the content directly,
// not rows for one of its episodes.
func (r *engagementRepository) FindHistoryForContent(ctx context.Context, userID, contentID uint) (*models.WatchHistory, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entry models.WatchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ? AND episode_id IS NULL", userID, contentID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *engagementRepository) FindHistoryForEpisode(ctx context.Context, userID, episodeID uint) (*models.WatchHistory, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var entry models.WatchHistory
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND episode_id = ?", userID, episodeID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *engagementRepository) CreateHistory(ctx context.Context, entry *models.WatchHistory) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *engagementRepository) UpdateHistory(ctx context.Context, entry *models.WatchHistory) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *engagementRepository) FindFavoriteByID(ctx context.Context, id uint) (*models.Favorite, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Preload("Content.Genres").
		First(&favorite, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *engagementRepository) FindFavoritesByUser(ctx context.Context, userID uint) ([]models.Favorite, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var favorites []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Content.Genres").
		Find(&favorites).Error
	return favorites, err
}

func (r *engagementRepository) FindFavorite(ctx context.Context, userID, contentID uint) (*models.Favorite, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var favorite models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&favorite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &favorite, nil
}

func (r *engagementRepository) CreateFavorite(ctx context.Context, favorite *models.Favorite) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *engagementRepository) DeleteFavorite(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Favorite{}, id).Error
}

func (r *engagementRepository) FindRatingByID(ctx context.Context, id uint) (*models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rating models.Rating
	err := r.db.WithContext(ctx).
		Preload("Content.Genres").
		Preload("User").
		First(&rating, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *engagementRepository) FindRatingsByUser(ctx context.Context, userID uint) ([]models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Content.Genres").
		Preload("User").
		Find(&ratings).Error
	return ratings, err
}

func (r *engagementRepository) FindRatingsByContent(ctx context.Context, contentID uint) ([]models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at DESC").
		Preload("Content.Genres").
		Preload("User").
		Find(&ratings).Error
	return ratings, err
}

func (r *engagementRepository) FindRating(ctx context.Context, userID, contentID uint) (*models.Rating, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", userID, contentID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rating, nil
}

func (r *engagementRepository) CreateRating(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *engagementRepository) UpdateRating(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(rating).Error
}
