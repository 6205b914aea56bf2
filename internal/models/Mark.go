package models

import (
	"time"

	"gorm.io/gorm"
)

// Favorite marks a route a user wants to keep at hand.
type Favorite struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"uniqueIndex:idx_favorite_user_route"`
	RouteID uint `json:"route_id" gorm:"uniqueIndex:idx_favorite_user_route"`
}

// Completion records that a user finished a route, with the moment they did.
type Completion struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index"`
	RouteID     uint      `json:"route_id" gorm:"index"`
	CompletedAt time.Time `json:"completed_at"`
}
