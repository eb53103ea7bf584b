package repository

import (
	"context"
	"testing"
	"time"

	"streaming-backend/internal/config"
	"streaming-backend/internal/database"
	"streaming-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *database.Database {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A second pooled connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	return database.New(db, config.DatabaseConfig{QueryTimeout: 5 * time.Second})
}

func createGenre(t *testing.T, db *database.Database, name string) models.Genre {
	genre := models.Genre{Name: name}
	require.NoError(t, db.Create(&genre).Error)
	return genre
}

func createContent(t *testing.T, db *database.Database, content models.Content) models.Content {
	if content.Description == "" {
		content.Description = "description"
	}
	require.NoError(t, db.Create(&content).Error)
	return content
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestContentRepositoryFindAllFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	action := createGenre(t, db, "Action")
	drama := createGenre(t, db, "Drama")

	createContent(t, db, models.Content{
		Title:       "Steel Horizon",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2021-06-10",
		Rating:      "PG-13",
		Genres:      []models.Genre{action},
	})
	createContent(t, db, models.Content{
		Title:       "Quiet Rivers",
		ContentType: models.ContentTypeSeries,
		ReleaseDate: "2021-09-01",
		Rating:      "TV-MA",
		Genres:      []models.Genre{drama},
	})
	createContent(t, db, models.Content{
		Title:       "Steel Curtain",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2019-02-14",
		Rating:      "R",
		Genres:      []models.Genre{action, drama},
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, contents, 3)
	})

	t.Run("by type", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{Type: models.ContentTypeMovie}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, c := range contents {
			assert.Equal(t, models.ContentTypeMovie, c.ContentType)
		}
	})

	t.Run("by genre is deduplicated", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{Genre: "drama"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, contents, 2)
	})

	t.Run("by year", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{Year: "2021"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		for _, c := range contents {
			assert.Contains(t, c.ReleaseDate, "2021-")
		}
	})

	t.Run("search is case-insensitive", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{Search: "STEEL"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, contents, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		filter := ContentFilter{Type: models.ContentTypeMovie, Genre: "drama", Year: "2019"}
		contents, total, err := repo.FindAll(ctx, filter, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, contents, 1)
		assert.Equal(t, "Steel Curtain", contents[0].Title)
	})

	t.Run("no match yields empty page", func(t *testing.T) {
		contents, total, err := repo.FindAll(ctx, ContentFilter{Rating: "G"}, 1, 20)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, contents)
	})
}

func TestContentRepositoryFindAllSorting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	createContent(t, db, models.Content{
		Title:       "Unrated",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2020-01-01",
		ViewCount:   50,
	})
	createContent(t, db, models.Content{
		Title:       "Top Rated",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2018-01-01",
		IMDBRating:  floatPtr(8.9),
		ViewCount:   10,
	})
	createContent(t, db, models.Content{
		Title:       "Mid Rated",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2022-01-01",
		IMDBRating:  floatPtr(6.4),
		ViewCount:   900,
	})

	t.Run("popularity", func(t *testing.T) {
		contents, _, err := repo.FindAll(ctx, ContentFilter{SortBy: "popularity"}, 1, 20)
		require.NoError(t, err)
		require.Len(t, contents, 3)
		assert.Equal(t, "Mid Rated", contents[0].Title)
		assert.Equal(t, "Unrated", contents[1].Title)
		assert.Equal(t, "Top Rated", contents[2].Title)
	})

	t.Run("release date", func(t *testing.T) {
		contents, _, err := repo.FindAll(ctx, ContentFilter{SortBy: "release_date"}, 1, 20)
		require.NoError(t, err)
		require.Len(t, contents, 3)
		assert.Equal(t, "Mid Rated", contents[0].Title)
		assert.Equal(t, "Unrated", contents[1].Title)
		assert.Equal(t, "Top Rated", contents[2].Title)
	})

	t.Run("rating puts unrated last", func(t *testing.T) {
		contents, _, err := repo.FindAll(ctx, ContentFilter{SortBy: "rating"}, 1, 20)
		require.NoError(t, err)
		require.Len(t, contents, 3)
		assert.Equal(t, "Top Rated", contents[0].Title)
		assert.Equal(t, "Mid Rated", contents[1].Title)
		assert.Equal(t, "Unrated", contents[2].Title)
	})
}

func TestContentRepositoryFindAllPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		createContent(t, db, models.Content{
			Title:       "Item",
			ContentType: models.ContentTypeMovie,
			ReleaseDate: "2020-01-01",
		})
	}

	contents, total, err := repo.FindAll(ctx, ContentFilter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, contents, 2)

	contents, total, err = repo.FindAll(ctx, ContentFilter{}, 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, contents, 1)
}

func TestContentRepositoryFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	person := models.Person{Name: "Jordan Vale", Role: models.RoleActor}
	require.NoError(t, db.Create(&person).Error)

	content := createContent(t, db, models.Content{
		Title:       "Northern Lights",
		ContentType: models.ContentTypeSeries,
		ReleaseDate: "2022-03-05",
		Cast: []models.CastMember{
			{PersonID: person.ID, CharacterName: "Captain", SortOrder: 1},
		},
		Seasons: []models.Season{
			{SeasonNumber: 2, Title: "Season Two"},
			{SeasonNumber: 1, Title: "Season One"},
		},
	})

	found, err := repo.FindByID(ctx, content.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Northern Lights", found.Title)
	require.Len(t, found.Cast, 1)
	assert.Equal(t, "Jordan Vale", found.Cast[0].Person.Name)
	require.Len(t, found.Seasons, 2)
	assert.EqualValues(t, 1, found.Seasons[0].SeasonNumber)
	assert.EqualValues(t, 2, found.Seasons[1].SeasonNumber)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestContentRepositoryFindRecommendations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	scifi := createGenre(t, db, "Sci-Fi")
	comedy := createGenre(t, db, "Comedy")

	watched := createContent(t, db, models.Content{
		Title:       "Watched One",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2020-01-01",
		Genres:      []models.Genre{scifi},
	})
	related := createContent(t, db, models.Content{
		Title:       "Related Pick",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2021-01-01",
		IMDBRating:  floatPtr(7.7),
		Genres:      []models.Genre{scifi},
	})
	createContent(t, db, models.Content{
		Title:       "Unrelated",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2021-01-01",
		Genres:      []models.Genre{comedy},
	})

	userID := uint(1)
	require.NoError(t, db.Create(&models.WatchHistory{
		UserID:    userID,
		ContentID: &watched.ID,
	}).Error)

	contents, err := repo.FindRecommendations(ctx, userID, 20)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, related.ID, contents[0].ID)

	t.Run("empty history yields no recommendations", func(t *testing.T) {
		contents, err := repo.FindRecommendations(ctx, 42, 20)
		require.NoError(t, err)
		assert.Empty(t, contents)
	})

	t.Run("limit caps the list", func(t *testing.T) {
		for i := 0; i < 25; i++ {
			createContent(t, db, models.Content{
				Title:       "Filler",
				ContentType: models.ContentTypeMovie,
				ReleaseDate: "2022-01-01",
				Genres:      []models.Genre{scifi},
			})
		}

		contents, err := repo.FindRecommendations(ctx, userID, 20)
		require.NoError(t, err)
		assert.Len(t, contents, 20)
	})
}
