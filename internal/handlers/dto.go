package handlers

import (
	"time"

	"streaming-backend/internal/models"
)

// Request bodies

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	Avatar            *string `json:"avatar"`
	DateOfBirth       *string `json:"date_of_birth"`
	PreferredLanguage *string `json:"preferred_language"`
}

type WatchHistoryRequest struct {
	ContentID *uint `json:"content_id"`
	EpisodeID *uint `json:"episode_id"`
	Progress  *uint `json:"progress"`
	Completed *bool `json:"completed"`
}

type FavoriteRequest struct {
	ContentID *uint `json:"content_id"`
}

type RatingRequest struct {
	ContentID *uint   `json:"content_id"`
	Rating    *uint   `json:"rating"`
	Review    *string `json:"review"`
}

// Response projections. ContentSummary is the listing shape; ContentDetail
// adds cast, directors, and nested seasons for single-item retrieval.

type ContentSummary struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type"`
	ReleaseDate string         `json:"release_date"`
	Duration    uint           `json:"duration"`
	Rating      string         `json:"rating"`
	IMDBRating  *float64       `json:"imdb_rating"`
	Poster      string         `json:"poster"`
	Backdrop    string         `json:"backdrop"`
	IsFeatured  bool           `json:"is_featured"`
	IsTrending  bool           `json:"is_trending"`
	ViewCount   uint           `json:"view_count"`
	Genres      []models.Genre `json:"genres"`
}

type CastEntry struct {
	Person        models.Person `json:"person"`
	CharacterName string        `json:"character_name"`
	Order         uint          `json:"order"`
}

type ContentDetail struct {
	ContentSummary
	OriginalTitle string          `json:"original_title"`
	TrailerURL    string          `json:"trailer_url"`
	VideoFile     string          `json:"video_file"`
	Cast          []CastEntry     `json:"cast"`
	Directors     []models.Person `json:"directors"`
	Seasons       []models.Season `json:"seasons"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ProfileResponse struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Avatar            string `json:"avatar"`
	DateOfBirth       string `json:"date_of_birth"`
	PreferredLanguage string `json:"preferred_language"`
}

type WatchHistoryResponse struct {
	ID        uint            `json:"id"`
	Content   *ContentSummary `json:"content"`
	Episode   *models.Episode `json:"episode"`
	Progress  uint            `json:"progress"`
	Completed bool            `json:"completed"`
	WatchedAt time.Time       `json:"watched_at"`
}

type FavoriteResponse struct {
	ID        uint           `json:"id"`
	Content   ContentSummary `json:"content"`
	CreatedAt time.Time      `json:"created_at"`
}

type RatingResponse struct {
	ID        uint           `json:"id"`
	Username  string         `json:"username"`
	Content   ContentSummary `json:"content"`
	Rating    uint           `json:"rating"`
	Review    string         `json:"review"`
	CreatedAt time.Time      `json:"created_at"`
}

// Builders

func NewContentSummary(content *models.Content) ContentSummary {
	genres := content.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return ContentSummary{
		ID:          content.ID,
		Title:       content.Title,
		Description: content.Description,
		ContentType: content.ContentType,
		ReleaseDate: content.ReleaseDate,
		Duration:    content.Duration,
		Rating:      content.Rating,
		IMDBRating:  content.IMDBRating,
		Poster:      content.PosterPath,
		Backdrop:    content.BackdropPath,
		IsFeatured:  content.IsFeatured,
		IsTrending:  content.IsTrending,
		ViewCount:   content.ViewCount,
		Genres:      genres,
	}
}

func NewContentSummaries(contents []models.Content) []ContentSummary {
	summaries := make([]ContentSummary, 0, len(contents))
	for i := range contents {
		summaries = append(summaries, NewContentSummary(&contents[i]))
	}
	return summaries
}

func NewContentDetail(content *models.Content) ContentDetail {
	cast := make([]CastEntry, 0, len(content.Cast))
	for _, member := range content.Cast {
		cast = append(cast, CastEntry{
			Person:        member.Person,
			CharacterName: member.CharacterName,
			Order:         member.SortOrder,
		})
	}

	directors := content.Directors
	if directors == nil {
		directors = []models.Person{}
	}
	seasons := content.Seasons
	if seasons == nil {
		seasons = []models.Season{}
	}

	return ContentDetail{
		ContentSummary: NewContentSummary(content),
		OriginalTitle:  content.OriginalTitle,
		TrailerURL:     content.TrailerURL,
		VideoFile:      content.VideoPath,
		Cast:           cast,
		Directors:      directors,
		Seasons:        seasons,
		CreatedAt:      content.CreatedAt,
		UpdatedAt:      content.UpdatedAt,
	}
}

func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func NewProfileResponse(profile *models.UserProfile) ProfileResponse {
	return ProfileResponse{
		Username:          profile.User.Username,
		Email:             profile.User.Email,
		Avatar:            profile.AvatarPath,
		DateOfBirth:       profile.DateOfBirth,
		PreferredLanguage: profile.PreferredLanguage,
	}
}

func NewWatchHistoryResponse(entry *models.WatchHistory) WatchHistoryResponse {
	resp := WatchHistoryResponse{
		ID:        entry.ID,
		Episode:   entry.Episode,
		Progress:  entry.Progress,
		Completed: entry.Completed,
		WatchedAt: entry.WatchedAt,
	}
	if entry.Content != nil {
		summary := NewContentSummary(entry.Content)
		resp.Content = &summary
	}
	return resp
}

func NewWatchHistoryResponses(entries []models.WatchHistory) []WatchHistoryResponse {
	responses := make([]WatchHistoryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, NewWatchHistoryResponse(&entries[i]))
	}
	return responses
}

func NewFavoriteResponse(favorite *models.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:        favorite.ID,
		Content:   NewContentSummary(&favorite.Content),
		CreatedAt: favorite.CreatedAt,
	}
}

func NewFavoriteResponses(favorites []models.Favorite) []FavoriteResponse {
	responses := make([]FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		responses = append(responses, NewFavoriteResponse(&favorites[i]))
	}
	return responses
}

func NewRatingResponse(rating *models.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID,
		Username:  rating.User.Username,
		Content:   NewContentSummary(&rating.Content),
		Rating:    rating.Score,
		Review:    rating.Review,
		CreatedAt: rating.CreatedAt,
	}
}

func NewRatingResponses(ratings []models.Rating) []RatingResponse {
	responses := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, NewRatingResponse(&ratings[i]))
	}
	return responses
}
