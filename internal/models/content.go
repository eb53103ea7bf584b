package models

import (
	"time"
)

// Content types accepted by the catalog.
const (
	ContentTypeMovie       = "movie"
	ContentTypeSeries      = "series"
	ContentTypeDocumentary = "documentary"
)

type Content struct {
	ID            uint         `gorm:"primaryKey" json:"id" example:"1"`
	Title         string       `gorm:"not null;index" json:"title" example:"The Last Frontier"`
	OriginalTitle string       `json:"original_title"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	ContentType   string       `gorm:"not null;index" json:"content_type" example:"series"`
	ReleaseDate   string       `gorm:"index" json:"release_date" example:"2023-05-12"`
	Duration      uint         `json:"duration" example:"124"`
	Rating        string       `gorm:"index" json:"rating" example:"PG-13"`
	IMDBRating    *float64     `gorm:"index" json:"imdb_rating" example:"8.1"`
	Genres        []Genre      `gorm:"many2many:content_genres;" json:"genres,omitempty"`
	Cast          []CastMember `gorm:"foreignKey:ContentID" json:"cast,omitempty"`
	Directors     []Person     `gorm:"many2many:content_directors;" json:"directors,omitempty"`
	Seasons       []Season     `gorm:"foreignKey:ContentID" json:"seasons,omitempty"`
	PosterPath    string       `json:"poster"`
	BackdropPath  string       `json:"backdrop"`
	TrailerURL    string       `json:"trailer_url"`
	VideoPath     string       `json:"video_file"`
	IsFeatured    bool         `gorm:"index" json:"is_featured"`
	IsTrending    bool         `gorm:"index" json:"is_trending"`
	ViewCount     uint         `json:"view_count"`
	CreatedAt     time.Time    `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}

// CastMember links a person to a content with their billing position.
// A person appears at most once per content.
type CastMember struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ContentID     uint   `gorm:"not null;uniqueIndex:idx_cast_content_person" json:"content_id"`
	PersonID      uint   `gorm:"not null;uniqueIndex:idx_cast_content_person" json:"person_id"`
	Person        Person `gorm:"foreignKey:PersonID" json:"person"`
	CharacterName string `json:"character_name"`
	SortOrder     uint   `gorm:"index" json:"order"`
}

func (CastMember) TableName() string {
	return "cast_members"
}
