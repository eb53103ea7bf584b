package handlers

import (
	"strconv"

	"streaming-backend/internal/middleware"
	"streaming-backend/internal/repository"
	"streaming-backend/internal/services"
	"streaming-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	service services.CatalogService
	logger  *logrus.Logger
}

func NewCatalogHandler(service services.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// GetGenres godoc
// @Summary List genres
// @Description Get all genres, optionally filtered by name
// @Tags catalog
// @Accept json
// @Produce json
// @Param search query string false "Filter by name (case-insensitive substring)"
// @Success 200 {array} models.Genre
// @Failure 500 {object} utils.DetailResponse
// @Router /genres [get]
func (h *CatalogHandler) GetGenres(c *fiber.Ctx) error {
	genres, err := h.service.ListGenres(c.Context(), c.Query("search"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list genres")
		return utils.HandleError(c, err)
	}
	return c.JSON(genres)
}

// GetGenreByID godoc
// @Summary Get genre by ID
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 404 {object} utils.DetailResponse
// @Router /genres/{id} [get]
func (h *CatalogHandler) GetGenreByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid genre ID")
	}

	genre, err := h.service.GetGenre(c.Context(), uint(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(genre)
}

// GetPeople godoc
// @Summary List people
// @Description Get all cast and crew members, optionally filtered by name
// @Tags catalog
// @Accept json
// @Produce json
// @Param search query string false "Filter by name (case-insensitive substring)"
// @Success 200 {array} models.Person
// @Failure 500 {object} utils.DetailResponse
// @Router /people [get]
func (h *CatalogHandler) GetPeople(c *fiber.Ctx) error {
	people, err := h.service.ListPeople(c.Context(), c.Query("search"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list people")
		return utils.HandleError(c, err)
	}
	return c.JSON(people)
}

// GetPersonByID godoc
// @Summary Get person by ID
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Person ID"
// @Success 200 {object} models.Person
// @Failure 404 {object} utils.DetailResponse
// @Router /people/{id} [get]
func (h *CatalogHandler) GetPersonByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid person ID")
	}

	person, err := h.service.GetPerson(c.Context(), uint(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(person)
}

// GetContents godoc
// @Summary List contents
// @Description Get contents filtered by type, genre, age rating, release year, and free text, sorted by the requested key
// @Tags catalog
// @Accept json
// @Produce json
// @Param type query string false "Content type (movie, series, documentary)"
// @Param genre query string false "Genre name (case-insensitive substring)"
// @Param rating query string false "Age rating (exact match)"
// @Param year query string false "Release year"
// @Param search query string false "Free-text search over title and description"
// @Param sort_by query string false "Sort key (popularity, release_date, rating); default is creation order" default(created_at)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.PagedResponse
// @Failure 500 {object} utils.DetailResponse
// @Router /contents [get]
func (h *CatalogHandler) GetContents(c *fiber.Ctx) error {
	filter := repository.ContentFilter{
		Type:   c.Query("type"),
		Genre:  c.Query("genre"),
		Rating: c.Query("rating"),
		Year:   c.Query("year"),
		Search: c.Query("search"),
		SortBy: c.Query("sort_by", "created_at"),
	}
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	contents, total, err := h.service.ListContents(c.Context(), filter, page, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list contents")
		return utils.HandleError(c, err)
	}

	return c.JSON(utils.PagedResponse{
		Results: NewContentSummaries(contents),
		Meta:    utils.CreatePaginationMeta(page, limit, total),
	})
}

// GetContentByID godoc
// @Summary Get content by ID
// @Description Get the full detail projection with cast, directors, and seasons
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Content ID"
// @Success 200 {object} handlers.ContentDetail
// @Failure 404 {object} utils.DetailResponse
// @Router /contents/{id} [get]
func (h *CatalogHandler) GetContentByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid content ID")
	}

	content, err := h.service.GetContent(c.Context(), uint(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewContentDetail(content))
}

// GetFeatured godoc
// @Summary List featured contents
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {array} handlers.ContentSummary
// @Failure 500 {object} utils.DetailResponse
// @Router /contents/featured [get]
func (h *CatalogHandler) GetFeatured(c *fiber.Ctx) error {
	contents, err := h.service.GetFeatured(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list featured contents")
		return utils.HandleError(c, err)
	}
	return c.JSON(NewContentSummaries(contents))
}

// GetTrending godoc
// @Summary List trending contents
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {array} handlers.ContentSummary
// @Failure 500 {object} utils.DetailResponse
// @Router /contents/trending [get]
func (h *CatalogHandler) GetTrending(c *fiber.Ctx) error {
	contents, err := h.service.GetTrending(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trending contents")
		return utils.HandleError(c, err)
	}
	return c.JSON(NewContentSummaries(contents))
}

// GetRecommendations godoc
// @Summary Personalized recommendations
// @Description Recommend unwatched contents sharing a genre with the caller's watch history
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.ContentSummary
// @Failure 401 {object} utils.DetailResponse
// @Router /contents/recommendations [get]
func (h *CatalogHandler) GetRecommendations(c *fiber.Ctx) error {
	contents, err := h.service.GetRecommendations(c.Context(), middleware.CurrentUserID(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewContentSummaries(contents))
}

// GetSeasons godoc
// @Summary List seasons
// @Tags catalog
// @Accept json
// @Produce json
// @Param content query int false "Filter by content ID"
// @Success 200 {array} models.Season
// @Failure 500 {object} utils.DetailResponse
// @Router /seasons [get]
func (h *CatalogHandler) GetSeasons(c *fiber.Ctx) error {
	seasons, err := h.service.ListSeasons(c.Context(), queryUint(c, "content"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list seasons")
		return utils.HandleError(c, err)
	}
	return c.JSON(seasons)
}

// GetSeasonByID godoc
// @Summary Get season by ID
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Season ID"
// @Success 200 {object} models.Season
// @Failure 404 {object} utils.DetailResponse
// @Router /seasons/{id} [get]
func (h *CatalogHandler) GetSeasonByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid season ID")
	}

	season, err := h.service.GetSeason(c.Context(), uint(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(season)
}

// GetEpisodes godoc
// @Summary List episodes
// @Tags catalog
// @Accept json
// @Produce json
// @Param season query int false "Filter by season ID"
// @Success 200 {array} models.Episode
// @Failure 500 {object} utils.DetailResponse
// @Router /episodes [get]
func (h *CatalogHandler) GetEpisodes(c *fiber.Ctx) error {
	episodes, err := h.service.ListEpisodes(c.Context(), queryUint(c, "season"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list episodes")
		return utils.HandleError(c, err)
	}
	return c.JSON(episodes)
}

// GetEpisodeByID godoc
// @Summary Get episode by ID
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Episode ID"
// @Success 200 {object} models.Episode
// @Failure 404 {object} utils.DetailResponse
// @Router /episodes/{id} [get]
func (h *CatalogHandler) GetEpisodeByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid episode ID")
	}

	episode, err := h.service.GetEpisode(c.Context(), uint(id))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(episode)
}

// queryUint parses an optional unsigned integer query parameter.
func queryUint(c *fiber.Ctx, key string) *uint {
	if value := c.Query(key); value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 32); err == nil {
			id := uint(parsed)
			return &id
		}
	}
	return nil
}
