package identity

import (
	"time"

	"assetvault/internal/models"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DemoAssets returns the onboarding collection seeded into new namespaces.
// Value and update timestamps are set to now.
func DemoAssets(now time.Time) []models.Asset {
	now = now.UTC()
	assets := []models.Asset{
		{
			ID:            "1",
			Name:          "Family Home",
			Category:      "real_estate",
			Subcategory:   "house",
			PurchasePrice: 350000,
			PurchaseDate:  "2020-03-15",
			CurrentValue:  420000,
			Details: models.Details{
				"address":       "123 Maple Street, Springfield",
				"squareFootage": "2400",
				"bedrooms":      "4",
				"bathrooms":     "3",
				"yearBuilt":     "2015",
			},
			Tags:       []string{"primary", "family"},
			IsFavorite: true,
			Condition:  models.ConditionExcellent,
			CreatedAt:  mustTime("2020-03-15T10:00:00Z"),
		},
		{
			ID:            "2",
			Name:          "2022 Tesla Model 3",
			Category:      "vehicle",
			Subcategory:   "car",
			PurchasePrice: 55000,
			PurchaseDate:  "2022-06-10",
			CurrentValue:  42000,
			Details: models.Details{
				"make":    "Tesla",
				"model":   "Model 3",
				"year":    "2022",
				"vin":     "5YJ3E1EA1NF123456",
				"mileage": "15000",
				"color":   "Pearl White",
			},
			Tags:       []string{"daily", "electric"},
			IsFavorite: true,
			Condition:  models.ConditionExcellent,
			CreatedAt:  mustTime("2022-06-10T14:30:00Z"),
		},
		{
			ID:            "3",
			Name:          "Rolex Submariner",
			Category:      "luxury",
			Subcategory:   "watch",
			PurchasePrice: 12000,
			PurchaseDate:  "2021-12-25",
			CurrentValue:  14500,
			Details: models.Details{
				"brand":          "Rolex",
				"model":          "Submariner Date",
				"serialNumber":   "M123456",
				"authentication": "true",
				"material":       "Stainless Steel",
			},
			Tags:       []string{"luxury", "investment"},
			IsFavorite: true,
			Condition:  models.ConditionExcellent,
			CreatedAt:  mustTime("2021-12-25T09:00:00Z"),
		},
		{
			ID:            "4",
			Name:          `MacBook Pro 16"`,
			Category:      "electronics",
			Subcategory:   "computer",
			PurchasePrice: 3500,
			PurchaseDate:  "2023-01-20",
			CurrentValue:  2200,
			Details: models.Details{
				"brand":          "Apple",
				"model":          "MacBook Pro 16-inch",
				"serialNumber":   "C02ABC123DEF",
				"specifications": "M2 Max, 32GB RAM, 1TB SSD",
				"warranty":       "2024-01-20",
			},
			Tags:      []string{"work", "professional"},
			Condition: models.ConditionExcellent,
			CreatedAt: mustTime("2023-01-20T16:45:00Z"),
		},
		{
			ID:            "5",
			Name:          "Living Room Sofa",
			Category:      "home",
			Subcategory:   "furniture",
			PurchasePrice: 2500,
			PurchaseDate:  "2022-08-15",
			CurrentValue:  1800,
			Details: models.Details{
				"brand":    "West Elm",
				"model":    "Andes Sectional",
				"room":     "Living Room",
				"material": "Velvet",
				"color":    "Navy Blue",
			},
			Tags:      []string{"furniture", "living room"},
			Condition: models.ConditionGood,
			CreatedAt: mustTime("2022-08-15T11:20:00Z"),
		},
	}

	for i := range assets {
		assets[i].Photos = []models.Photo{}
		assets[i].LastValueUpdate = now
		assets[i].UpdatedAt = now
	}
	return assets
}
