package models

import "time"

// WatchHistory tracks playback progress for either a content or an episode.
// Uniqueness per (user, target) is enforced by the write path, not by the
// schema: concurrent writes to the same target can leave duplicate rows.
type WatchHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ContentID *uint     `gorm:"index" json:"content_id"`
	Content   *Content  `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	EpisodeID *uint     `gorm:"index" json:"episode_id"`
	Episode   *Episode  `gorm:"foreignKey:EpisodeID" json:"episode,omitempty"`
	Progress  uint      `json:"progress" example:"1520"`
	Completed bool      `json:"completed"`
	WatchedAt time.Time `gorm:"autoCreateTime;index" json:"watched_at"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_content" json:"user_id"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_content" json:"content_id"`
	Content   Content   `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_ratings_user_content" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	ContentID uint      `gorm:"not null;uniqueIndex:idx_ratings_user_content" json:"content_id"`
	Content   Content   `gorm:"foreignKey:ContentID" json:"content,omitempty"`
	Score     uint      `gorm:"not null" json:"rating" example:"4"`
	Review    string    `gorm:"type:text" json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
