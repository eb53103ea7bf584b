package models

import "time"

// Person roles accepted by the catalog.
const (
	RoleActor    = "actor"
	RoleDirector = "director"
	RoleProducer = "producer"
	RoleWriter   = "writer"
)

type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;index" json:"name" example:"Greta Gerwig"`
	Biography string    `gorm:"type:text" json:"biography"`
	BirthDate string    `json:"birth_date" example:"1983-08-04"`
	PhotoPath string    `json:"photo"`
	Role      string    `gorm:"default:actor" json:"role" example:"director"`
	CreatedAt time.Time `json:"created_at"`
}

func (Person) TableName() string {
	return "people"
}
