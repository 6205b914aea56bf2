package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/middleware"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/routes"
)

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrator().DropTable(
		&models.User{}, &models.Route{}, &models.RouteTag{}, &models.RouteSeason{},
		&models.RouteTransport{}, &models.Favorite{}, &models.Completion{},
	))
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Route{}, &models.RouteTag{}, &models.RouteSeason{},
		&models.RouteTransport{}, &models.Favorite{}, &models.Completion{},
	))
	require.NoError(t, config.SeedRoutes(db))
	config.DB = db

	return routes.SetupRouter()
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := middleware.GenerateToken(1, "traveler")
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authHeader(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sendEvent(t *testing.T, r *gin.Engine, chatID int64, kind, value string) map[string]any {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/dialogue/event", gin.H{
		"chat_id": chatID, "type": kind, "value": value,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDialogueRequiresAuth(t *testing.T) {
	r := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/dialogue/rank", bytes.NewBufferString(`{"chat_id":1}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRankRefusedWithoutPreferences(t *testing.T) {
	r := setupServer(t)
	w := doJSON(t, r, http.MethodPost, "/dialogue/rank", gin.H{"chat_id": 100})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Установить предпочтения")
}

func TestDialogueFlowEndToEnd(t *testing.T) {
	r := setupServer(t)
	const chat = int64(200)

	resp := sendEvent(t, r, chat, "start_setup", "")
	require.Equal(t, "choose_season", resp["prompt"])
	require.Equal(t, "season", resp["keyboard"])

	resp = sendEvent(t, r, chat, "select_season", "summer")
	require.Equal(t, "enter_length", resp["prompt"])

	resp = sendEvent(t, r, chat, "answer", "сорок")
	require.Equal(t, "retry_length", resp["prompt"])

	resp = sendEvent(t, r, chat, "answer", "40")
	require.Equal(t, "enter_price", resp["prompt"])

	resp = sendEvent(t, r, chat, "answer", "2500")
	require.Equal(t, "choose_difficulty", resp["prompt"])

	resp = sendEvent(t, r, chat, "select_difficulty", "easy")
	require.Equal(t, "enter_popularity", resp["prompt"])

	resp = sendEvent(t, r, chat, "answer", "50")
	require.Equal(t, "choose_transport", resp["prompt"])

	resp = sendEvent(t, r, chat, "select_transport", "car")
	require.Equal(t, "choose_tags", resp["prompt"])

	sendEvent(t, r, chat, "tag_toggle", "nature")
	sendEvent(t, r, chat, "tag_toggle", "family")
	resp = sendEvent(t, r, chat, "tags_done", "")
	require.Equal(t, "setup_complete", resp["prompt"])

	// Ranking now succeeds and is ordered by descending score.
	w := doJSON(t, r, http.MethodPost, "/dialogue/rank", gin.H{"chat_id": chat, "limit": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rank struct {
		Results []struct {
			Score float64 `json:"score"`
			Route struct {
				Title string `json:"title"`
			} `json:"route"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rank))
	require.Len(t, rank.Results, 3)
	for i := 1; i < len(rank.Results); i++ {
		require.GreaterOrEqual(t, rank.Results[i-1].Score, rank.Results[i].Score)
	}
	require.Greater(t, rank.Results[0].Score, 0.0)
}

func TestUnknownEventType(t *testing.T) {
	r := setupServer(t)
	w := doJSON(t, r, http.MethodPost, "/dialogue/event", gin.H{
		"chat_id": 1, "type": "teleport",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewPreferencesShowsProgress(t *testing.T) {
	r := setupServer(t)
	const chat = int64(300)

	sendEvent(t, r, chat, "select_season", "winter")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/dialogue/preferences/%d", chat), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	require.Contains(t, body, "зима")
	require.Contains(t, body, "ожидание ввода длины маршрута")
}

func TestFavoriteUnknownRouteIsNotice(t *testing.T) {
	r := setupServer(t)
	w := doJSON(t, r, http.MethodPost, "/dialogue/favorites", gin.H{
		"chat_id": 400, "route_id": 99999,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "Маршрут не найден")
}

func TestFavoriteLifecycle(t *testing.T) {
	r := setupServer(t)
	const chat = int64(500)

	w := doJSON(t, r, http.MethodPost, "/dialogue/favorites", gin.H{"chat_id": chat, "route_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	// Repeat mark is a no-op.
	w = doJSON(t, r, http.MethodPost, "/dialogue/favorites", gin.H{"chat_id": chat, "route_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/dialogue/favorites/%d", chat), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Favorites []models.Route `json:"favorites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Favorites, 1)
}
