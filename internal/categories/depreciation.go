package categories

import (
	"math"
	"time"

	"assetvault/internal/models"
)

// residualFloor is the share of the purchase price an estimate never drops below.
const residualFloor = 0.1

const daysPerYear = 365.25

// EstimateValue applies compound yearly depreciation at rate percent to
// purchasePrice for the time elapsed between purchaseDate and now. A rate of
// 0 returns the price unchanged, and the result never drops below 10% of the
// price. An unparsable or future purchase date counts as zero years owned.
func EstimateValue(purchasePrice float64, purchaseDate string, rate float64, now time.Time) float64 {
	if rate == 0 {
		return purchasePrice
	}

	years := 0.0
	if d, err := time.Parse(models.DateLayout, purchaseDate); err == nil {
		if elapsed := now.Sub(d); elapsed > 0 {
			years = elapsed.Hours() / 24 / daysPerYear
		}
	}

	depreciated := purchasePrice * math.Pow(1-rate/100, years)
	return math.Max(depreciated, purchasePrice*residualFloor)
}

// EstimateAsset estimates the current value of a using its category's rate.
// The second result is false when the category is unknown.
func EstimateAsset(a *models.Asset, now time.Time) (float64, bool) {
	c, ok := registry[a.Category]
	if !ok {
		return 0, false
	}
	return EstimateValue(a.PurchasePrice, a.PurchaseDate, c.DepreciationRate, now), true
}
