package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/store"
)

type markInput struct {
	ChatID  int64 `json:"chat_id" binding:"required"`
	RouteID uint  `json:"route_id" binding:"required"`
}

func markStores() (*store.PreferenceStore, *store.MarkStore) {
	return store.NewPreferenceStore(config.DB), store.NewMarkStore(config.DB)
}

// AddFavorite marks a catalog route as a favorite for the chat user.
// An unknown route id yields a notice, not a failure.
func AddFavorite(c *gin.Context) {
	var input markInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	prefStore, marks := markStores()
	user, err := prefStore.EnsureUser(c.Request.Context(), input.ChatID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := marks.AddFavorite(c.Request.Context(), user.ID, input.RouteID); err != nil {
		if errors.Is(err, store.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден."})
			return
		}
		logrus.WithError(err).Error("AddFavorite: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Маршрут добавлен в избранное ⭐"})
}

func RemoveFavorite(c *gin.Context) {
	var input markInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	prefStore, marks := markStores()
	user, err := prefStore.EnsureUser(c.Request.Context(), input.ChatID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := marks.RemoveFavorite(c.Request.Context(), user.ID, input.RouteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Маршрут убран из избранного."})
}

func ListFavorites(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	prefStore, marks := markStores()
	user, err := prefStore.EnsureUser(c.Request.Context(), chatID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	routes, err := marks.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": routes})
}

// CompleteRoute records a finished route with a timestamp.
func CompleteRoute(c *gin.Context) {
	var input markInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	prefStore, marks := markStores()
	user, err := prefStore.EnsureUser(c.Request.Context(), input.ChatID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := marks.AddCompletion(c.Request.Context(), user.ID, input.RouteID, time.Now().UTC()); err != nil {
		if errors.Is(err, store.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Маршрут не найден."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Поздравляем с пройденным маршрутом! 🏔️"})
}

func ListCompletions(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("chat_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat id"})
		return
	}

	prefStore, marks := markStores()
	user, err := prefStore.EnsureUser(c.Request.Context(), chatID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	completions, err := marks.ListCompletions(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completions": completions})
}
