package models

import (
	"gorm.io/gorm"
)

// Route is an immutable catalog entry describing a travel itinerary across
// the Tyva Republic. Tag/season/transport values live in association tables,
// one row per value.
type Route struct {
	gorm.Model

	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	LengthKm      *float64 `json:"length_km"`
	Difficulty    string   `json:"difficulty"` // "easy", "moderate", "hard"
	PriceEstimate *float64 `json:"price_estimate"`
	Link          string   `json:"link"`
	Popularity    int      `json:"popularity" gorm:"default:0"` // 0–100

	// Track geometry stored as WKB (LINESTRING, SRID 4326).
	// The API boundary speaks GeoJSON.
	Track []byte `gorm:"type:bytea" json:"-"`

	// Associations
	Tags       []RouteTag       `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tags,omitempty"`
	Seasons    []RouteSeason    `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"seasons,omitempty"`
	Transports []RouteTransport `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"transports,omitempty"`
}

type RouteTag struct {
	RouteID uint   `json:"route_id" gorm:"primaryKey"`
	Tag     string `json:"tag" gorm:"primaryKey"`
}

type RouteSeason struct {
	RouteID uint   `json:"route_id" gorm:"primaryKey"`
	Season  string `json:"season" gorm:"primaryKey"` // "winter", "spring", "summer", "autumn"
}

type RouteTransport struct {
	RouteID   uint   `json:"route_id" gorm:"primaryKey"`
	Transport string `json:"transport" gorm:"primaryKey"`
}
