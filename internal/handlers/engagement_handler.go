package handlers

import (
	"strconv"

	"streaming-backend/internal/middleware"
	"streaming-backend/internal/services"
	"streaming-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type EngagementHandler struct {
	service services.EngagementService
	logger  *logrus.Logger
}

func NewEngagementHandler(service services.EngagementService, logger *logrus.Logger) *EngagementHandler {
	return &EngagementHandler{
		service: service,
		logger:  logger,
	}
}

// GetHistory godoc
// @Summary List watch history
// @Description Get the caller's watch history, most recent first
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.WatchHistoryResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /history [get]
func (h *EngagementHandler) GetHistory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	entries, err := h.service.ListHistory(c.Context(), *userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list watch history")
		return utils.HandleError(c, err)
	}
	return c.JSON(NewWatchHistoryResponses(entries))
}

// RecordHistory godoc
// @Summary Record watch progress
// @Description Create or update the caller's progress for a content or an episode
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.WatchHistoryRequest true "Watch progress"
// @Success 200 {object} handlers.WatchHistoryResponse
// @Failure 400 {object} utils.DetailResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /history [post]
func (h *EngagementHandler) RecordHistory(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req WatchHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	entry, err := h.service.UpsertHistory(c.Context(), *userID, services.HistoryInput{
		ContentID: req.ContentID,
		EpisodeID: req.EpisodeID,
		Progress:  req.Progress,
		Completed: req.Completed,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewWatchHistoryResponse(entry))
}

// GetFavorites godoc
// @Summary List favorites
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handlers.FavoriteResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /favorites [get]
func (h *EngagementHandler) GetFavorites(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	favorites, err := h.service.ListFavorites(c.Context(), *userID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list favorites")
		return utils.HandleError(c, err)
	}
	return c.JSON(NewFavoriteResponses(favorites))
}

// AddFavorite godoc
// @Summary Add a favorite
// @Description Favorite a content; favoriting the same content twice is rejected
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.FavoriteRequest true "Content to favorite"
// @Success 201 {object} handlers.FavoriteResponse
// @Failure 400 {object} utils.DetailResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /favorites [post]
func (h *EngagementHandler) AddFavorite(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	favorite, err := h.service.AddFavorite(c.Context(), *userID, req.ContentID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(NewFavoriteResponse(favorite))
}

// RemoveFavorite godoc
// @Summary Remove a favorite
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Favorite ID"
// @Success 204 "No Content"
// @Failure 401 {object} utils.DetailResponse
// @Failure 404 {object} utils.DetailResponse
// @Router /favorites/{id} [delete]
func (h *EngagementHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid favorite ID")
	}

	if err := h.service.RemoveFavorite(c.Context(), *userID, uint(id)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRatings godoc
// @Summary List ratings
// @Description Get the caller's ratings, or all ratings for one content when the content filter is set
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param content query int false "Filter by content ID"
// @Success 200 {array} handlers.RatingResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /ratings [get]
func (h *EngagementHandler) GetRatings(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	ratings, err := h.service.ListRatings(c.Context(), *userID, queryUint(c, "content"))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list ratings")
		return utils.HandleError(c, err)
	}
	return c.JSON(NewRatingResponses(ratings))
}

// RateContent godoc
// @Summary Rate a content
// @Description Create or update the caller's rating for a content
// @Tags engagement
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body handlers.RatingRequest true "Rating"
// @Success 200 {object} handlers.RatingResponse
// @Failure 400 {object} utils.DetailResponse
// @Failure 401 {object} utils.DetailResponse
// @Router /ratings [post]
func (h *EngagementHandler) RateContent(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req RatingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	rating, err := h.service.UpsertRating(c.Context(), *userID, services.RatingInput{
		ContentID: req.ContentID,
		Score:     req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		return utils.HandleError(c, err)
	}
	return c.JSON(NewRatingResponse(rating))
}
