package services

import (
	"context"
	"errors"

	"streaming-backend/internal/apperrors"
	"streaming-backend/internal/models"
	"streaming-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryInput carries a watch-history write. Exactly one of ContentID or
// EpisodeID selects the target; nil progress/completed fields keep the prior
// values on update.
type HistoryInput struct {
	ContentID *uint
	EpisodeID *uint
	Progress  *uint
	Completed *bool
}

// RatingInput carries a rating write. Nil score/review keep the prior values
// on update.
type RatingInput struct {
	ContentID *uint
	Score     *uint
	Review    *string
}

// EngagementService coordinates the per-user write paths. Each write looks up
// the existing (user, target) record first and then inserts or updates:
// watch history and ratings upsert, favorites reject duplicates outright.
type EngagementService interface {
	ListHistory(ctx context.Context, userID uint) ([]models.WatchHistory, error)
	UpsertHistory(ctx context.Context, userID uint, input HistoryInput) (*models.WatchHistory, error)

	ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, userID uint, contentID *uint) (*models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, favoriteID uint) error

	ListRatings(ctx context.Context, userID uint, contentID *uint) ([]models.Rating, error)
	UpsertRating(ctx context.Context, userID uint, input RatingInput) (*models.Rating, error)
}

type engagementService struct {
	repo   repository.EngagementRepository
	logger *logrus.Logger
}

func NewEngagementService(repo repository.EngagementRepository, logger *logrus.Logger) EngagementService {
	return &engagementService{
		repo:   repo,
		logger: logger,
	}
}

func (s *engagementService) ListHistory(ctx context.Context, userID uint) ([]models.WatchHistory, error) {
	return s.repo.FindHistoryByUser(ctx, userID)
}

// UpsertHistory updates the caller's existing record for the target in place,
// or creates one. A content target matches only rows without an episode, so
// series-level and per-episode progress stay separate.
func (s *engagementService) UpsertHistory(ctx context.Context, userID uint, input HistoryInput) (*models.WatchHistory, error) {
	var existing *models.WatchHistory
	var err error

	switch {
	case input.ContentID != nil:
		existing, err = s.repo.FindHistoryForContent(ctx, userID, *input.ContentID)
	case input.EpisodeID != nil:
		existing, err = s.repo.FindHistoryForEpisode(ctx, userID, *input.EpisodeID)
	default:
		return nil, apperrors.Validation("Content or episode is required")
	}
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if input.Progress != nil {
			existing.Progress = *input.Progress
		}
		if input.Completed != nil {
			existing.Completed = *input.Completed
		}
		if err := s.repo.UpdateHistory(ctx, existing); err != nil {
			return nil, err
		}
		return s.repo.FindHistoryByID(ctx, existing.ID)
	}

	entry := &models.WatchHistory{
		UserID:    userID,
		ContentID: input.ContentID,
		EpisodeID: input.EpisodeID,
	}
	if input.Progress != nil {
		entry.Progress = *input.Progress
	}
	if input.Completed != nil {
		entry.Completed = *input.Completed
	}
	if err := s.repo.CreateHistory(ctx, entry); err != nil {
		return nil, err
	}
	return s.repo.FindHistoryByID(ctx, entry.ID)
}

func (s *engagementService) ListFavorites(ctx context.Context, userID uint) ([]models.Favorite, error) {
	return s.repo.FindFavoritesByUser(ctx, userID)
}

// AddFavorite is insert-only: favoriting a content twice is a conflict, not
// an update. The (user, content) unique index backs this up under concurrent
// requests.
func (s *engagementService) AddFavorite(ctx context.Context, userID uint, contentID *uint) (*models.Favorite, error) {
	if contentID == nil {
		return nil, apperrors.Validation("Content ID is required")
	}

	existing, err := s.repo.FindFavorite(ctx, userID, *contentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("Content is already in favorites")
	}

	favorite := &models.Favorite{
		UserID:    userID,
		ContentID: *contentID,
	}
	if err := s.repo.CreateFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Content is already in favorites")
		}
		return nil, err
	}
	return s.repo.FindFavoriteByID(ctx, favorite.ID)
}

func (s *engagementService) RemoveFavorite(ctx context.Context, userID, favoriteID uint) error {
	favorite, err := s.repo.FindFavoriteByID(ctx, favoriteID)
	if err != nil {
		return err
	}
	if favorite == nil || favorite.UserID != userID {
		return apperrors.NotFound("Favorite not found")
	}
	return s.repo.DeleteFavorite(ctx, favorite.ID)
}

func (s *engagementService) ListRatings(ctx context.Context, userID uint, contentID *uint) ([]models.Rating, error) {
	if contentID != nil {
		return s.repo.FindRatingsByContent(ctx, *contentID)
	}
	return s.repo.FindRatingsByUser(ctx, userID)
}

// UpsertRating replaces the caller's score and/or review for a content, or
// creates the rating when none exists.
func (s *engagementService) UpsertRating(ctx context.Context, userID uint, input RatingInput) (*models.Rating, error) {
	if input.ContentID == nil {
		return nil, apperrors.Validation("Content ID is required")
	}
	if input.Score != nil && (*input.Score < 1 || *input.Score > 5) {
		return nil, apperrors.Validation("Rating must be between 1 and 5")
	}

	existing, err := s.repo.FindRating(ctx, userID, *input.ContentID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if input.Score != nil {
			existing.Score = *input.Score
		}
		if input.Review != nil {
			existing.Review = *input.Review
		}
		if err := s.repo.UpdateRating(ctx, existing); err != nil {
			return nil, err
		}
		return s.repo.FindRatingByID(ctx, existing.ID)
	}

	if input.Score == nil {
		return nil, apperrors.Validation("Rating is required")
	}

	rating := &models.Rating{
		UserID:    userID,
		ContentID: *input.ContentID,
		Score:     *input.Score,
	}
	if input.Review != nil {
		rating.Review = *input.Review
	}
	if err := s.repo.CreateRating(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("Content is already rated")
		}
		return nil, err
	}
	return s.repo.FindRatingByID(ctx, rating.ID)
}
