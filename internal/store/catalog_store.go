package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/recommend"
)

// CatalogStore reads the immutable route catalog. Association rows are
// preloaded in batch queries rather than fetched per route.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ListRoutes returns the whole catalog with tag/season/transport sets
// resolved, in stable primary-key order.
func (s *CatalogStore) ListRoutes(ctx context.Context) ([]recommend.Route, error) {
	var rows []models.Route
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Seasons").
		Preload("Transports").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	routes := make([]recommend.Route, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, toCatalogRoute(row))
	}
	return routes, nil
}

// GetRoute resolves one catalog entry. Returns gorm.ErrRecordNotFound for
// an unknown id.
func (s *CatalogStore) GetRoute(ctx context.Context, id uint) (recommend.Route, error) {
	var row models.Route
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Preload("Seasons").
		Preload("Transports").
		First(&row, id).Error
	if err != nil {
		return recommend.Route{}, err
	}
	return toCatalogRoute(row), nil
}

func toCatalogRoute(row models.Route) recommend.Route {
	r := recommend.Route{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		LengthKm:      row.LengthKm,
		Difficulty:    row.Difficulty,
		PriceEstimate: row.PriceEstimate,
		Link:          row.Link,
		Popularity:    row.Popularity,
	}
	for _, t := range row.Tags {
		r.Tags = append(r.Tags, t.Tag)
	}
	for _, s := range row.Seasons {
		r.Seasons = append(r.Seasons, s.Season)
	}
	for _, t := range row.Transports {
		r.Transports = append(r.Transports, t.Transport)
	}
	return r
}
