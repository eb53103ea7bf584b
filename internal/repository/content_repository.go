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

// ContentFilter holds the optional listing filters. Present filters are
// AND-combined; SortBy falls back to creation order for unknown values.
type ContentFilter struct {
	Type   string
	Genre  string
	Rating string
	Year   string
	Search string
	SortBy string
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Content, error)
	FindAll(ctx context.Context, filter ContentFilter, page, limit int) ([]models.Content, int64, error)
	FindFeatured(ctx context.Context) ([]models.Content, error)
	FindTrending(ctx context.Context) ([]models.Content, error)
	FindRecommendations(ctx context.Context, userID uint, limit int) ([]models.Content, error)
}

type contentRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewContentRepository(db *database.Database) ContentRepository {
	return &contentRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *contentRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Save(content).Error
}

func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Delete(&models.Content{}, id).Error
}

// FindByID loads the full detail projection: genres, ordered cast with person
// records, directors, and seasons with nested episodes.
func (r *contentRepository) FindByID(ctx context.Context, id uint) (*models.Content, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var content models.Content
	err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Cast", func(db *gorm.DB) *gorm.DB {
			return db.Order("cast_members.sort_order")
		}).
		Preload("Cast.Person").
		Preload("Directors").
		Preload("Seasons", func(db *gorm.DB) *gorm.DB {
			return db.Order("seasons.season_number")
		}).
		Preload("Seasons.Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episodes.episode_number")
		}).
		First(&content, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) FindAll(ctx context.Context, filter ContentFilter, page, limit int) ([]models.Content, int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx)
	query := tx.Model(&models.Content{})

	if filter.Type != "" {
		query = query.Where("contents.content_type = ?", filter.Type)
	}

	if filter.Genre != "" {
		// Subquery keeps the result set deduplicated when a content matches
		// through more than one genre.
		matching := tx.Table("content_genres").
			Select("content_genres.content_id").
			Joins("JOIN genres ON genres.id = content_genres.genre_id").
			Where("LOWER(genres.name) LIKE ?", "%"+strings.ToLower(filter.Genre)+"%")
		query = query.Where("contents.id IN (?)", matching)
	}

	if filter.Rating != "" {
		query = query.Where("contents.rating = ?", filter.Rating)
	}

	// Release dates are stored as ISO strings, so the year filter is a prefix
	// match.
	if filter.Year != "" {
		query = query.Where("contents.release_date LIKE ?", filter.Year+"-%")
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(contents.title) LIKE ? OR LOWER(contents.original_title) LIKE ? OR LOWER(contents.description) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order(orderClause(filter.SortBy))

	var contents []models.Content
	offset := (page - 1) * limit
	if err := query.Preload("Genres").Offset(offset).Limit(limit).Find(&contents).Error; err != nil {
		return nil, 0, err
	}

	return contents, total, nil
}

func orderClause(sortBy string) string {
	switch sortBy {
	case "popularity":
		return "contents.view_count DESC"
	case "release_date":
		return "contents.release_date DESC"
	case "rating":
		// Unrated contents sort last.
		return "contents.imdb_rating DESC NULLS LAST"
	default:
		return "contents.created_at DESC"
	}
}

func (r *contentRepository) FindFeatured(ctx context.Context) ([]models.Content, error) {
	return r.findFlagged(ctx, "is_featured")
}

func (r *contentRepository) FindTrending(ctx context.Context) ([]models.Content, error) {
	return r.findFlagged(ctx, "is_trending")
}

func (r *contentRepository) findFlagged(ctx context.Context, flag string) ([]models.Content, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var contents []models.Content
	err := r.db.WithContext(ctx).
		Where(flag+" = ?", true).
		Order("created_at DESC").
		Preload("Genres").
		Find(&contents).Error
	return contents, err
}

// FindRecommendations selects unwatched contents that share a genre with the
// user's watch history, best-rated first.
func (r *contentRepository) FindRecommendations(ctx context.Context, userID uint, limit int) ([]models.Content, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx)

	watchedContents := func() *gorm.DB {
		return tx.Model(&models.WatchHistory{}).
			Select("watch_histories.content_id").
			Where("watch_histories.user_id = ? AND watch_histories.content_id IS NOT NULL", userID)
	}

	watchedGenres := tx.Table("content_genres").
		Select("content_genres.genre_id").
		Where("content_genres.content_id IN (?)", watchedContents())

	inWatchedGenres := tx.Table("content_genres").
		Select("content_genres.content_id").
		Where("content_genres.genre_id IN (?)", watchedGenres)

	var contents []models.Content
	err := tx.Model(&models.Content{}).
		Where("contents.id IN (?)", inWatchedGenres).
		Where("contents.id NOT IN (?)", watchedContents()).
		Order("contents.imdb_rating DESC NULLS LAST").
		Limit(limit).
		Preload("Genres").
		Find(&contents).Error
	return contents, err
}
