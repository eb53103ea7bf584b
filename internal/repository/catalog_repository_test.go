package repository

import (
	"context"
	"testing"

	"streaming-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreRepositoryFindOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, "Thriller")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := repo.FindOrCreate(ctx, "Thriller")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	genres, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, genres, 1)
}

func TestGenreRepositoryFindAllSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGenreRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Drama", "Docudrama", "Comedy"} {
		require.NoError(t, repo.Create(ctx, &models.Genre{Name: name}))
	}

	genres, err := repo.FindAll(ctx, "drama")
	require.NoError(t, err)
	require.Len(t, genres, 2)
	// Name ordering.
	assert.Equal(t, "Docudrama", genres[0].Name)
	assert.Equal(t, "Drama", genres[1].Name)
}

func TestPersonRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPersonRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Person{Name: "Morgan Teale", Role: models.RoleDirector}))
	require.NoError(t, repo.Create(ctx, &models.Person{Name: "Ada Teale", Role: models.RoleActor}))

	people, err := repo.FindAll(ctx, "teale")
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "Ada Teale", people[0].Name)

	found, err := repo.FindByID(ctx, people[0].ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, models.RoleActor, found.Role)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSeasonRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSeasonRepository(db)
	ctx := context.Background()

	content := createContent(t, db, models.Content{
		Title:       "Northern Lights",
		ContentType: models.ContentTypeSeries,
		ReleaseDate: "2022-03-05",
	})

	season := models.Season{ContentID: content.ID, SeasonNumber: 1, Title: "Season One"}
	require.NoError(t, repo.CreateSeason(ctx, &season))
	require.NoError(t, repo.CreateEpisode(ctx, &models.Episode{SeasonID: season.ID, EpisodeNumber: 2, Title: "Second"}))
	require.NoError(t, repo.CreateEpisode(ctx, &models.Episode{SeasonID: season.ID, EpisodeNumber: 1, Title: "Pilot"}))

	t.Run("seasons by content with ordered episodes", func(t *testing.T) {
		seasons, err := repo.FindSeasons(ctx, &content.ID)
		require.NoError(t, err)
		require.Len(t, seasons, 1)
		require.Len(t, seasons[0].Episodes, 2)
		assert.Equal(t, "Pilot", seasons[0].Episodes[0].Title)
		assert.Equal(t, "Second", seasons[0].Episodes[1].Title)
	})

	t.Run("episodes by season", func(t *testing.T) {
		episodes, err := repo.FindEpisodes(ctx, &season.ID)
		require.NoError(t, err)
		require.Len(t, episodes, 2)
		assert.EqualValues(t, 1, episodes[0].EpisodeNumber)
	})

	t.Run("duplicate season number is rejected", func(t *testing.T) {
		err := repo.CreateSeason(ctx, &models.Season{ContentID: content.ID, SeasonNumber: 1})
		assert.Error(t, err)
	})
}

func TestContentRepositoryCreateUpdateDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewContentRepository(db)
	ctx := context.Background()

	content := models.Content{
		Title:       "Draft Title",
		Description: "description",
		ContentType: models.ContentTypeMovie,
		ReleaseDate: "2024-01-01",
	}
	require.NoError(t, repo.Create(ctx, &content))
	require.NotZero(t, content.ID)

	content.Title = "Final Title"
	require.NoError(t, repo.Update(ctx, &content))

	found, err := repo.FindByID(ctx, content.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Final Title", found.Title)

	require.NoError(t, repo.Delete(ctx, content.ID))

	found, err = repo.FindByID(ctx, content.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}
