package services

import (
	"context"

	"streaming-backend/internal/apperrors"
	"streaming-backend/internal/models"
	"streaming-backend/internal/repository"

	"github.com/sirupsen/logrus"
)

// RecommendationLimit caps the personalized recommendation list.
const RecommendationLimit = 20

type CatalogService interface {
	ListGenres(ctx context.Context, search string) ([]models.Genre, error)
	GetGenre(ctx context.Context, id uint) (*models.Genre, error)

	ListPeople(ctx context.Context, search string) ([]models.Person, error)
	GetPerson(ctx context.Context, id uint) (*models.Person, error)

	ListContents(ctx context.Context, filter repository.ContentFilter, page, limit int) ([]models.Content, int64, error)
	GetContent(ctx context.Context, id uint) (*models.Content, error)
	GetFeatured(ctx context.Context) ([]models.Content, error)
	GetTrending(ctx context.Context) ([]models.Content, error)
	GetRecommendations(ctx context.Context, userID *uint) ([]models.Content, error)

	ListSeasons(ctx context.Context, contentID *uint) ([]models.Season, error)
	GetSeason(ctx context.Context, id uint) (*models.Season, error)
	ListEpisodes(ctx context.Context, seasonID *uint) ([]models.Episode, error)
	GetEpisode(ctx context.Context, id uint) (*models.Episode, error)
}

type catalogService struct {
	contentRepo repository.ContentRepository
	genreRepo   repository.GenreRepository
	personRepo  repository.PersonRepository
	seasonRepo  repository.SeasonRepository
	logger      *logrus.Logger
}

func NewCatalogService(
	contentRepo repository.ContentRepository,
	genreRepo repository.GenreRepository,
	personRepo repository.PersonRepository,
	seasonRepo repository.SeasonRepository,
	logger *logrus.Logger,
) CatalogService {
	return &catalogService{
		contentRepo: contentRepo,
		genreRepo:   genreRepo,
		personRepo:  personRepo,
		seasonRepo:  seasonRepo,
		logger:      logger,
	}
}

func (s *catalogService) ListGenres(ctx context.Context, search string) ([]models.Genre, error) {
	return s.genreRepo.FindAll(ctx, search)
}

func (s *catalogService) GetGenre(ctx context.Context, id uint) (*models.Genre, error) {
	genre, err := s.genreRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, apperrors.NotFound("Genre not found")
	}
	return genre, nil
}

func (s *catalogService) ListPeople(ctx context.Context, search string) ([]models.Person, error) {
	return s.personRepo.FindAll(ctx, search)
}

func (s *catalogService) GetPerson(ctx context.Context, id uint) (*models.Person, error) {
	person, err := s.personRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, apperrors.NotFound("Person not found")
	}
	return person, nil
}

func (s *catalogService) ListContents(ctx context.Context, filter repository.ContentFilter, page, limit int) ([]models.Content, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return s.contentRepo.FindAll(ctx, filter, page, limit)
}

func (s *catalogService) GetContent(ctx context.Context, id uint) (*models.Content, error) {
	content, err := s.contentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFound("Content not found")
	}
	return content, nil
}

func (s *catalogService) GetFeatured(ctx context.Context) ([]models.Content, error) {
	return s.contentRepo.FindFeatured(ctx)
}

func (s *catalogService) GetTrending(ctx context.Context) ([]models.Content, error) {
	return s.contentRepo.FindTrending(ctx)
}

// GetRecommendations requires an authenticated caller; anonymous requests are
// rejected rather than served a generic list.
func (s *catalogService) GetRecommendations(ctx context.Context, userID *uint) ([]models.Content, error) {
	if userID == nil {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	return s.contentRepo.FindRecommendations(ctx, *userID, RecommendationLimit)
}

func (s *catalogService) ListSeasons(ctx context.Context, contentID *uint) ([]models.Season, error) {
	return s.seasonRepo.FindSeasons(ctx, contentID)
}

func (s *catalogService) GetSeason(ctx context.Context, id uint) (*models.Season, error) {
	season, err := s.seasonRepo.FindSeasonByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, apperrors.NotFound("Season not found")
	}
	return season, nil
}

func (s *catalogService) ListEpisodes(ctx context.Context, seasonID *uint) ([]models.Episode, error) {
	return s.seasonRepo.FindEpisodes(ctx, seasonID)
}

func (s *catalogService) GetEpisode(ctx context.Context, id uint) (*models.Episode, error) {
	episode, err := s.seasonRepo.FindEpisodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if episode == nil {
		return nil, apperrors.NotFound("Episode not found")
	}
	return episode, nil
}
