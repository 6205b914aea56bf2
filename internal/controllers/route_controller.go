package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/prefs"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/store"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// RouteResponse mirrors models.Route but carries the track as a GeoJSON
// string and the association sets as plain values.
type RouteResponse struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	LengthKm      *float64 `json:"length_km"`
	Difficulty    string   `json:"difficulty"`
	PriceEstimate *float64 `json:"price_estimate"`
	Link          string   `json:"link"`
	Popularity    int      `json:"popularity"`
	Track         string   `json:"track,omitempty"`
	Tags          []string `json:"tags"`
	Seasons       []string `json:"seasons"`
	Transports    []string `json:"transports"`
}

func toRouteResponse(route models.Route) RouteResponse {
	track, _ := convertWKBToGeoJSON(route.Track)
	resp := RouteResponse{
		ID:            route.ID,
		Title:         route.Title,
		Description:   route.Description,
		LengthKm:      route.LengthKm,
		Difficulty:    route.Difficulty,
		PriceEstimate: route.PriceEstimate,
		Link:          route.Link,
		Popularity:    route.Popularity,
		Track:         track,
	}
	for _, t := range route.Tags {
		resp.Tags = append(resp.Tags, t.Tag)
	}
	for _, s := range route.Seasons {
		resp.Seasons = append(resp.Seasons, s.Season)
	}
	for _, t := range route.Transports {
		resp.Transports = append(resp.Transports, t.Transport)
	}
	return resp
}

// parseAndConvertTrack parses a GeoJSON string into a geom.T and returns WKB bytes
func parseAndConvertTrack(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	err := gjson.Unmarshal([]byte(raw), &g)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// convertWKBToGeoJSON converts WKB bytes into a GeoJSON string
func convertWKBToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type routeInput struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	LengthKm      *float64 `json:"length_km"`
	Difficulty    string   `json:"difficulty"`
	PriceEstimate *float64 `json:"price_estimate"`
	Link          string   `json:"link"`
	Popularity    int      `json:"popularity"`
	Track         string   `json:"track"` // GeoJSON
	Tags          []string `json:"tags"`
	Seasons       []string `json:"seasons"`
	Transports    []string `json:"transports"`
}

func validateRouteInput(input routeInput) error {
	if input.Popularity < 0 || input.Popularity > 100 {
		return errors.New("popularity must be within 0–100")
	}
	if input.LengthKm != nil && *input.LengthKm < 0 {
		return errors.New("length_km must be non-negative")
	}
	if input.PriceEstimate != nil && *input.PriceEstimate < 0 {
		return errors.New("price_estimate must be non-negative")
	}
	if input.Difficulty != "" {
		if _, ok := prefs.ParseDifficulty(input.Difficulty); !ok {
			return errors.New("unknown difficulty: " + input.Difficulty)
		}
	}
	for _, s := range input.Seasons {
		if _, ok := prefs.ParseSeason(s); !ok {
			return errors.New("unknown season: " + s)
		}
	}
	return nil
}

// CreateRoute adds a catalog entry together with its tag/season/transport
// rows and optional GeoJSON track. Admin only.
func CreateRoute(c *gin.Context) {
	var input routeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if err := validateRouteInput(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wkbTrack, err := parseAndConvertTrack(input.Track)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid track: " + err.Error()})
		return
	}

	route := models.Route{
		Title:         input.Title,
		Description:   input.Description,
		LengthKm:      input.LengthKm,
		Difficulty:    input.Difficulty,
		PriceEstimate: input.PriceEstimate,
		Link:          input.Link,
		Popularity:    input.Popularity,
		Track:         wkbTrack,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&route).Error; err != nil {
			return err
		}
		return createAssociations(tx, route.ID, input)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create route failed: " + err.Error()})
		return
	}

	config.DB.Preload("Tags").Preload("Seasons").Preload("Transports").First(&route, route.ID)
	c.JSON(http.StatusCreated, gin.H{"route": toRouteResponse(route)})
}

func createAssociations(tx *gorm.DB, routeID uint, input routeInput) error {
	for _, tag := range input.Tags {
		if err := tx.Create(&models.RouteTag{RouteID: routeID, Tag: tag}).Error; err != nil {
			return err
		}
	}
	for _, season := range input.Seasons {
		if err := tx.Create(&models.RouteSeason{RouteID: routeID, Season: season}).Error; err != nil {
			return err
		}
	}
	for _, transport := range input.Transports {
		if err := tx.Create(&models.RouteTransport{RouteID: routeID, Transport: transport}).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListCatalog returns the whole catalog with sets resolved. Public.
func ListCatalog(c *gin.Context) {
	catalog := store.NewCatalogStore(config.DB)
	routes, err := catalog.ListRoutes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("ListCatalog: could not load catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GetCatalogRoute returns a single catalog entry. Public.
func GetCatalogRoute(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	catalog := store.NewCatalogStore(config.DB)
	route, err := catalog.GetRoute(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

type routeUpdateInput struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	LengthKm      *float64 `json:"length_km"`
	Difficulty    *string  `json:"difficulty"`
	PriceEstimate *float64 `json:"price_estimate"`
	Link          *string  `json:"link"`
	Popularity    *int     `json:"popularity"`
	Track         *string  `json:"track"`
	Tags          []string `json:"tags"`
	Seasons       []string `json:"seasons"`
	Transports    []string `json:"transports"`
}

// UpdateRoute patches a catalog entry; provided association lists replace
// the existing rows wholesale. Admin only.
func UpdateRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid route ID in parameter")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			logrus.WithError(err).Error("UpdateRoute: database error fetching route")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	var input routeUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("UpdateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := applyRouteUpdates(&route, &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&route).Error; err != nil {
			return err
		}
		if input.Tags != nil {
			if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteTag{}).Error; err != nil {
				return err
			}
		}
		if input.Seasons != nil {
			if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteSeason{}).Error; err != nil {
				return err
			}
		}
		if input.Transports != nil {
			if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteTransport{}).Error; err != nil {
				return err
			}
		}
		return createAssociations(tx, route.ID, routeInput{
			Tags:       input.Tags,
			Seasons:    input.Seasons,
			Transports: input.Transports,
		})
	})
	if err != nil {
		logrus.WithError(err).Error("UpdateRoute: failed to save updated route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	config.DB.Preload("Tags").Preload("Seasons").Preload("Transports").First(&route, route.ID)
	c.JSON(http.StatusOK, gin.H{"route": toRouteResponse(route)})
}

func applyRouteUpdates(route *models.Route, input *routeUpdateInput) error {
	if input.Title != nil {
		route.Title = *input.Title
	}
	if input.Description != nil {
		route.Description = *input.Description
	}
	if input.LengthKm != nil {
		if *input.LengthKm < 0 {
			return errors.New("length_km must be non-negative")
		}
		route.LengthKm = input.LengthKm
	}
	if input.Difficulty != nil {
		if _, ok := prefs.ParseDifficulty(*input.Difficulty); !ok {
			return errors.New("unknown difficulty: " + *input.Difficulty)
		}
		route.Difficulty = *input.Difficulty
	}
	if input.PriceEstimate != nil {
		if *input.PriceEstimate < 0 {
			return errors.New("price_estimate must be non-negative")
		}
		route.PriceEstimate = input.PriceEstimate
	}
	if input.Link != nil {
		route.Link = *input.Link
	}
	if input.Popularity != nil {
		if *input.Popularity < 0 || *input.Popularity > 100 {
			return errors.New("popularity must be within 0–100")
		}
		route.Popularity = *input.Popularity
	}
	if input.Track != nil {
		if *input.Track == "" {
			route.Track = nil
		} else {
			wkbTrack, err := parseAndConvertTrack(*input.Track)
			if err != nil {
				return errors.New("Invalid track: " + err.Error())
			}
			route.Track = wkbTrack
		}
	}
	for _, s := range input.Seasons {
		if _, ok := prefs.ParseSeason(s); !ok {
			return errors.New("unknown season: " + s)
		}
	}
	return nil
}

// DeleteRoute removes a route and its association rows. Admin only.
func DeleteRoute(c *gin.Context) {
	rID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid route ID"})
		return
	}

	var route models.Route
	if err := config.DB.First(&route, rID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteSeason{}).Error; err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", route.ID).Delete(&models.RouteTransport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&route).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete route: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully"})
}
