package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
)

type seedRoute struct {
	Title         string
	Description   string
	LengthKm      float64
	Difficulty    string
	PriceEstimate float64
	Popularity    int
	Link          string
	Tags          []string
	Seasons       []string
	Transports    []string
}

var seedRoutes = []seedRoute{
	{
		Title:         "Кызыл — озеро Дьенгек",
		Description:   "Лёгкий однодневный маршрут",
		LengthKm:      40,
		Difficulty:    "easy",
		PriceEstimate: 2500,
		Popularity:    50,
		Tags:          []string{"nature", "family", "hiking"},
		Seasons:       []string{"summer", "autumn"},
		Transports:    []string{"car", "minibus"},
	},
	{
		Title:         "Чадан — курган Чыратас",
		Description:   "Двухдневный маршрут с треккингом",
		LengthKm:      120,
		Difficulty:    "moderate",
		PriceEstimate: 10000,
		Popularity:    30,
		Tags:          []string{"adventure", "trekking", "nature"},
		Seasons:       []string{"summer"},
		Transports:    []string{"car"},
	},
	{
		Title:         "Долина царей — курган Аржаан-2",
		Description:   "Экскурсия к скифским курганам Турано-Уюкской котловины",
		LengthKm:      90,
		Difficulty:    "easy",
		PriceEstimate: 3500,
		Popularity:    70,
		Link:          "https://visittuva.ru/routes/arzhaan-2",
		Tags:          []string{"history", "culture", "family"},
		Seasons:       []string{"spring", "summer", "autumn"},
		Transports:    []string{"car", "minibus"},
	},
	{
		Title:         "Озеро Азас и Тоджинская котловина",
		Description:   "Заповедные озёра Тоджи, рыбалка и сплав",
		LengthKm:      280,
		Difficulty:    "hard",
		PriceEstimate: 18000,
		Popularity:    20,
		Tags:          []string{"nature", "adventure", "food"},
		Seasons:       []string{"summer"},
		Transports:    []string{"4x4", "boat"},
	},
	{
		Title:         "Гора Монгун-Тайга",
		Description:   "Восхождение на высочайшую вершину Тывы (3976 м)",
		LengthKm:      210,
		Difficulty:    "hard",
		PriceEstimate: 25000,
		Popularity:    15,
		Link:          "https://visittuva.ru/routes/mongun-taiga",
		Tags:          []string{"adventure", "trekking"},
		Seasons:       []string{"summer"},
		Transports:    []string{"4x4", "on_foot"},
	},
	{
		Title:         "Кызыл — обелиск «Центр Азии»",
		Description:   "Прогулка по набережной Кызыла и национальный музей",
		LengthKm:      5,
		Difficulty:    "easy",
		PriceEstimate: 500,
		Popularity:    90,
		Link:          "https://visittuva.ru/routes/center-of-asia",
		Tags:          []string{"city", "culture", "history", "family"},
		Seasons:       []string{"winter", "spring", "summer", "autumn"},
		Transports:    []string{"on_foot"},
	},
	{
		Title:         "Убсунурская котловина",
		Description:   "Биосферный заповедник на границе с Монголией",
		LengthKm:      320,
		Difficulty:    "moderate",
		PriceEstimate: 15000,
		Popularity:    25,
		Tags:          []string{"nature", "adventure"},
		Seasons:       []string{"spring", "summer", "autumn"},
		Transports:    []string{"car", "4x4"},
	},
	{
		Title:         "Устуу-Хурээ",
		Description:   "Буддийский храмовый комплекс под Чаданом",
		LengthKm:      230,
		Difficulty:    "easy",
		PriceEstimate: 4000,
		Popularity:    55,
		Link:          "https://visittuva.ru/routes/ustuu-khuree",
		Tags:          []string{"culture", "history"},
		Seasons:       []string{"summer", "autumn"},
		Transports:    []string{"car", "minibus"},
	},
	{
		Title:         "Аржаан Чойган",
		Description:   "Термальные источники в Восточных Саянах, конно-пеший маршрут",
		LengthKm:      180,
		Difficulty:    "hard",
		PriceEstimate: 20000,
		Popularity:    10,
		Tags:          []string{"nature", "trekking", "adventure"},
		Seasons:       []string{"summer"},
		Transports:    []string{"on_foot"},
	},
	{
		Title:         "Зимний Кызыл — хуреш и горловое пение",
		Description:   "Этнографическая программа с концертом ансамбля",
		LengthKm:      10,
		Difficulty:    "easy",
		PriceEstimate: 3000,
		Popularity:    60,
		Tags:          []string{"culture", "city", "food"},
		Seasons:       []string{"winter"},
		Transports:    []string{"car", "minibus"},
	},
}

// SeedRoutes loads the Tyva catalog on first start. Idempotent: a non-empty
// routes table is left untouched.
func SeedRoutes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Route{}).Count(&count).Error; err != nil {
		return err
	}
	logrus.WithField("routes", count).Info("routes in DB")
	if count > 0 {
		return nil
	}

	logrus.Info("seeding sample routes")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, r := range seedRoutes {
			lengthKm := r.LengthKm
			price := r.PriceEstimate
			route := models.Route{
				Title:         r.Title,
				Description:   r.Description,
				LengthKm:      &lengthKm,
				Difficulty:    r.Difficulty,
				PriceEstimate: &price,
				Link:          r.Link,
				Popularity:    r.Popularity,
			}
			if err := tx.Create(&route).Error; err != nil {
				return err
			}
			for _, tag := range r.Tags {
				if err := tx.Create(&models.RouteTag{RouteID: route.ID, Tag: tag}).Error; err != nil {
					return err
				}
			}
			for _, season := range r.Seasons {
				if err := tx.Create(&models.RouteSeason{RouteID: route.ID, Season: season}).Error; err != nil {
					return err
				}
			}
			for _, transport := range r.Transports {
				if err := tx.Create(&models.RouteTransport{RouteID: route.ID, Transport: transport}).Error; err != nil {
					return err
				}
			}
		}
		logrus.Info("seeding finished")
		return nil
	})
}
