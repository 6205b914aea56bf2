package recommend

import (
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/prefs"
)

// Route is the read-only catalog view the scorer works against, with the
// tag/season/transport sets already resolved.
type Route struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	LengthKm      *float64 `json:"length_km"`
	Difficulty    string   `json:"difficulty"`
	PriceEstimate *float64 `json:"price_estimate"`
	Link          string   `json:"link"`
	Popularity    int      `json:"popularity"`
	Tags          []string `json:"tags"`
	Seasons       []string `json:"seasons"`
	Transports    []string `json:"transports"`
}

// Recommendation pairs a route with its computed score.
type Recommendation struct {
	Route Route   `json:"route"`
	Score float64 `json:"score"`
}

// DefaultLimit is the top-K size when the caller does not supply one.
const DefaultLimit = 10

var seasonByMonth = map[time.Month]string{
	time.January:   "winter",
	time.February:  "winter",
	time.March:     "spring",
	time.April:     "spring",
	time.May:       "spring",
	time.June:      "summer",
	time.July:      "summer",
	time.August:    "summer",
	time.September: "autumn",
	time.October:   "autumn",
	time.November:  "autumn",
	time.December:  "winter",
}

// SeasonForMonth maps a calendar month to its season.
func SeasonForMonth(m time.Month) string {
	return seasonByMonth[m]
}

// CurrentSeason derives the real-world season at ranking time.
func CurrentSeason(now time.Time) string {
	return SeasonForMonth(now.UTC().Month())
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ScoreRoute computes the additive fit of one route against a preference
// document. Unset preference fields skip their term; the result is defined
// for any partially filled document and is never negative.
func ScoreRoute(r Route, doc prefs.Document, currentSeason string) float64 {
	score := 0.0

	// Season: being in season right now outweighs the stated preference.
	if contains(r.Seasons, currentSeason) {
		score += 3
	}
	if doc.Season != "" && contains(r.Seasons, string(doc.Season)) {
		score += 1
	}

	// Length closeness, clamped at zero.
	if doc.LengthKm != nil {
		length := 0.0
		if r.LengthKm != nil {
			length = *r.LengthKm
		}
		score += math.Max(0, 3-math.Abs(length-*doc.LengthKm)/20)
	}

	// Price closeness, clamped at zero.
	if doc.PriceEstimate != nil {
		price := 0.0
		if r.PriceEstimate != nil {
			price = *r.PriceEstimate
		}
		score += math.Max(0, 3-math.Abs(price-*doc.PriceEstimate)/3000)
	}

	if doc.Difficulty != "" && string(doc.Difficulty) == r.Difficulty {
		score += 2
	}

	// Popularity closeness, clamped at zero.
	if doc.Popularity != nil {
		score += math.Max(0, 2-math.Abs(float64(r.Popularity-*doc.Popularity))/30)
	}

	if doc.Transport != "" && contains(r.Transports, string(doc.Transport)) {
		score += 2
	}

	// Tags: a flat bonus per matched tag plus a ratio bonus for covering
	// more of what the user asked for.
	matched := 0
	for _, tag := range doc.Tags {
		if contains(r.Tags, tag) {
			matched++
		}
	}
	score += float64(matched) * 2.5
	if len(doc.Tags) > 0 {
		score += float64(matched) / float64(len(doc.Tags)) * 2
	}

	if r.Link != "" {
		score += 0.5
	}

	return score
}

// Rank scores every catalog route against the document and returns the top
// limit entries in descending score order. Equal scores keep catalog order.
// An empty catalog yields an empty list.
func Rank(routes []Route, doc prefs.Document, limit int, now time.Time) []Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}
	currentSeason := CurrentSeason(now)

	scored := make([]Recommendation, 0, len(routes))
	for _, r := range routes {
		scored = append(scored, Recommendation{Route: r, Score: ScoreRoute(r, doc, currentSeason)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	logrus.WithFields(logrus.Fields{
		"season":  currentSeason,
		"catalog": len(routes),
		"top":     len(scored),
	}).Debug("recommendations ranked")
	return scored
}
