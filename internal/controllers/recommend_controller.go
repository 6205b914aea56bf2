package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/config"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/recommend"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/store"
)

type rankInput struct {
	ChatID int64 `json:"chat_id" binding:"required"`
	Limit  int   `json:"limit"`
}

// RankRoutes scores the whole catalog against the user's preference
// document and returns the top-K list. An empty document is refused with
// guidance instead of an empty ranking.
func RankRoutes(c *gin.Context) {
	var input rankInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	prefStore := store.NewPreferenceStore(config.DB)
	doc, err := prefStore.Get(c.Request.Context(), input.ChatID)
	if err != nil {
		logrus.WithError(err).Error("RankRoutes: could not load preferences")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if doc.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "preferences not set",
			"message": "Сначала установите предпочтения через кнопку 'Установить предпочтения'.",
		})
		return
	}

	catalog := store.NewCatalogStore(config.DB)
	routes, err := catalog.ListRoutes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("RankRoutes: could not load catalog")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recs := recommend.Rank(routes, doc, input.Limit, time.Now())
	if len(recs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Не найдено маршрутов.", "results": []recommend.Recommendation{}})
		return
	}

	lines := make([]string, 0, len(recs))
	for _, r := range recs {
		lines = append(lines, fmt.Sprintf("➤%s \n📎 score %.3f", r.Route.Title, r.Score))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "🗺️ ТОП МАРШРУТОВ 🗺️\n\n" + strings.Join(lines, "\n"),
		"results": recs,
	})
}
