package routes

import (
	"streaming-backend/internal/handlers"
	"streaming-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	auth *middleware.Auth,
	catalogHandler *handlers.CatalogHandler,
	engagementHandler *handlers.EngagementHandler,
	accountHandler *handlers.AccountHandler,
	uploadHandler *handlers.UploadHandler,
) {
	// API versioning
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Every route sees the caller's identity when a token is sent; routes
	// behind Require reject anonymous callers.
	v1.Use(auth.Identify())

	// Catalog routes - public browsing
	genres := v1.Group("/genres")
	{
		genres.Get("/", catalogHandler.GetGenres)
		genres.Get("/:id", catalogHandler.GetGenreByID)
	}

	people := v1.Group("/people")
	{
		people.Get("/", catalogHandler.GetPeople)
		people.Get("/:id", catalogHandler.GetPersonByID)
	}

	contents := v1.Group("/contents")
	{
		contents.Get("/", catalogHandler.GetContents)
		// Static paths must register before the :id wildcard.
		contents.Get("/featured", catalogHandler.GetFeatured)
		contents.Get("/trending", catalogHandler.GetTrending)
		contents.Get("/recommendations", catalogHandler.GetRecommendations)
		contents.Get("/:id", catalogHandler.GetContentByID)
	}

	seasons := v1.Group("/seasons")
	{
		seasons.Get("/", catalogHandler.GetSeasons)
		seasons.Get("/:id", catalogHandler.GetSeasonByID)
	}

	episodes := v1.Group("/episodes")
	{
		episodes.Get("/", catalogHandler.GetEpisodes)
		episodes.Get("/:id", catalogHandler.GetEpisodeByID)
	}

	// Account routes
	v1.Post("/register", accountHandler.Register)

	authGroup := v1.Group("/auth")
	{
		authGroup.Post("/token", accountHandler.Login)
		authGroup.Get("/me", auth.Require(), accountHandler.Me)
	}

	profile := v1.Group("/profile", auth.Require())
	{
		profile.Get("/", accountHandler.GetProfile)
		profile.Put("/", accountHandler.UpdateProfile)
		profile.Patch("/", accountHandler.UpdateProfile)
	}

	// Engagement routes - per-user state
	history := v1.Group("/history", auth.Require())
	{
		history.Get("/", engagementHandler.GetHistory)
		history.Post("/", engagementHandler.RecordHistory)
	}

	favorites := v1.Group("/favorites", auth.Require())
	{
		favorites.Get("/", engagementHandler.GetFavorites)
		favorites.Post("/", engagementHandler.AddFavorite)
		favorites.Delete("/:id", engagementHandler.RemoveFavorite)
	}

	ratings := v1.Group("/ratings", auth.Require())
	{
		ratings.Get("/", engagementHandler.GetRatings)
		ratings.Post("/", engagementHandler.RateContent)
	}

	upload := v1.Group("/upload", auth.Require())
	{
		upload.Get("/presign", uploadHandler.GetPresignedURL)
	}
}
