package models

type Season struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ContentID    uint      `gorm:"not null;uniqueIndex:idx_seasons_content_number" json:"content_id"`
	SeasonNumber uint      `gorm:"not null;uniqueIndex:idx_seasons_content_number" json:"season_number"`
	Title        string    `json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ReleaseDate  string    `json:"release_date" example:"2023-05-12"`
	PosterPath   string    `json:"poster"`
	Episodes     []Episode `gorm:"foreignKey:SeasonID" json:"episodes,omitempty"`
}

func (Season) TableName() string {
	return "seasons"
}

type Episode struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	SeasonID      uint   `gorm:"not null;uniqueIndex:idx_episodes_season_number" json:"season_id"`
	EpisodeNumber uint   `gorm:"not null;uniqueIndex:idx_episodes_season_number" json:"episode_number"`
	Title         string `json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Duration      uint   `json:"duration" example:"47"`
	ReleaseDate   string `json:"release_date"`
	VideoPath     string `json:"video_file"`
	ThumbnailPath string `json:"thumbnail"`
	ViewCount     uint   `json:"view_count"`
}

func (Episode) TableName() string {
	return "episodes"
}
