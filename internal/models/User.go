package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	// ChatID is the messenger-side identity. Nil for pure API clients.
	ChatID *int64 `json:"chat_id,omitempty" gorm:"uniqueIndex"`
	Name   string `json:"name"`

	// API client credentials. Chat users created on first contact have none.
	Email    *string `json:"email,omitempty" gorm:"uniqueIndex"`
	Password string  `json:"-"`
	Role     string  `json:"role"` // "traveler", "admin"

	// Preferences holds the serialized preference document, overwritten whole
	// on every state-machine write.
	Preferences datatypes.JSON `json:"preferences"`

	Favorites   []Favorite   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"favorites,omitempty"`
	Completions []Completion `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"completions,omitempty"`
}
