package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
)

// ErrRouteNotFound signals a mark referencing a route id the catalog does
// not hold. Callers turn it into a user-visible notice.
var ErrRouteNotFound = errors.New("route not found")

// MarkStore persists favorite and completion marks between users and routes.
type MarkStore struct {
	db *gorm.DB
}

func NewMarkStore(db *gorm.DB) *MarkStore {
	return &MarkStore{db: db}
}

func (s *MarkStore) routeExists(ctx context.Context, routeID uint) error {
	var route models.Route
	if err := s.db.WithContext(ctx).First(&route, routeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		return err
	}
	return nil
}

// AddFavorite marks a route as a favorite. Repeated marks are a no-op.
func (s *MarkStore) AddFavorite(ctx context.Context, userID, routeID uint) error {
	if err := s.routeExists(ctx, routeID); err != nil {
		return err
	}
	var fav models.Favorite
	return s.db.WithContext(ctx).
		Where(models.Favorite{UserID: userID, RouteID: routeID}).
		FirstOrCreate(&fav).Error
}

func (s *MarkStore) RemoveFavorite(ctx context.Context, userID, routeID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND route_id = ?", userID, routeID).
		Delete(&models.Favorite{}).Error
}

// ListFavorites returns the favored routes in the order they were marked.
func (s *MarkStore) ListFavorites(ctx context.Context, userID uint) ([]models.Route, error) {
	var favs []models.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&favs).Error; err != nil {
		return nil, err
	}
	if len(favs) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(favs))
	for _, f := range favs {
		ids = append(ids, f.RouteID)
	}
	var routes []models.Route
	err := s.db.WithContext(ctx).
		Preload("Tags").Preload("Seasons").Preload("Transports").
		Where("id IN ?", ids).
		Order("id").
		Find(&routes).Error
	return routes, err
}

// AddCompletion records that the user finished a route at the given moment.
func (s *MarkStore) AddCompletion(ctx context.Context, userID, routeID uint, at time.Time) error {
	if err := s.routeExists(ctx, routeID); err != nil {
		return err
	}
	completion := models.Completion{UserID: userID, RouteID: routeID, CompletedAt: at}
	return s.db.WithContext(ctx).Create(&completion).Error
}

func (s *MarkStore) ListCompletions(ctx context.Context, userID uint) ([]models.Completion, error) {
	var completions []models.Completion
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("completed_at").
		Find(&completions).Error
	return completions, err
}
