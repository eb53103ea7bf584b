package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserProfile struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID" json:"-"`
	AvatarPath        string    `json:"avatar"`
	DateOfBirth       string    `json:"date_of_birth"`
	PreferredLanguage string    `gorm:"default:en" json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
