package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"assetvault/internal/categories"
	"assetvault/internal/models"
)

// DefaultRecentLimit is the number of assets Recent returns when n <= 0.
const DefaultRecentLimit = 5

// CategorySlice is one entry of the category breakdown.
type CategorySlice struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	Color    string  `json:"color"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
}

// Summary is the aggregate view of a collection.
type Summary struct {
	TotalValue           float64         `json:"totalValue"`
	TotalCost            float64         `json:"totalCost"`
	TotalGainLoss        float64         `json:"totalGainLoss"`
	TotalGainLossPercent float64         `json:"totalGainLossPercent"`
	AssetCount           int             `json:"assetCount"`
	CategoryBreakdown    []CategorySlice `json:"categoryBreakdown"`
	TopCategory          *CategorySlice  `json:"topCategory"`
	MostValuableAsset    *models.Asset   `json:"mostValuableAsset"`
	FormattedTotalValue  string          `json:"formattedTotalValue"`
	FormattedGainLoss    string          `json:"formattedGainLoss"`
}

// Summarize aggregates assets. The breakdown lists categories in the order
// they are first encountered and omits categories that are not registered;
// such assets still count toward the totals. Ties for top category and most
// valuable asset go to the first encountered, and a candidate must be
// strictly positive to win.
func Summarize(assets []models.Asset, currencyCode string) Summary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero

	var breakdown []CategorySlice
	values := map[string]decimal.Decimal{}
	index := map[string]int{}

	var mostValuable *models.Asset
	for i := range assets {
		a := &assets[i]
		value := decimal.NewFromFloat(a.CurrentValue)
		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(decimal.NewFromFloat(a.PurchasePrice))

		best := 0.0
		if mostValuable != nil {
			best = mostValuable.CurrentValue
		}
		if a.CurrentValue > best {
			mostValuable = a
		}

		cat, ok := categories.Get(a.Category)
		if !ok {
			continue
		}
		pos, seen := index[a.Category]
		if !seen {
			pos = len(breakdown)
			index[a.Category] = pos
			breakdown = append(breakdown, CategorySlice{
				Category: cat.ID,
				Name:     cat.Name,
				Icon:     cat.Icon,
				Color:    cat.Color,
			})
		}
		values[a.Category] = values[a.Category].Add(value)
		breakdown[pos].Count++
	}

	var top *CategorySlice
	for i := range breakdown {
		breakdown[i].Value = values[breakdown[i].Category].InexactFloat64()
		if breakdown[i].Value > 0 && (top == nil || breakdown[i].Value > top.Value) {
			top = &breakdown[i]
		}
	}

	gain := totalValue.Sub(totalCost)
	percent := decimal.Zero
	if !totalCost.IsZero() {
		percent = gain.Div(totalCost).Mul(decimal.NewFromInt(100))
	}

	s := Summary{
		TotalValue:           totalValue.InexactFloat64(),
		TotalCost:            totalCost.InexactFloat64(),
		TotalGainLoss:        gain.InexactFloat64(),
		TotalGainLossPercent: percent.InexactFloat64(),
		AssetCount:           len(assets),
		CategoryBreakdown:    breakdown,
	}
	if s.CategoryBreakdown == nil {
		s.CategoryBreakdown = []CategorySlice{}
	}
	if top != nil {
		t := *top
		s.TopCategory = &t
	}
	if mostValuable != nil {
		m := mostValuable.Clone()
		s.MostValuableAsset = &m
	}
	s.FormattedTotalValue = FormatMoney(s.TotalValue, currencyCode)
	s.FormattedGainLoss = FormatSigned(s.TotalGainLoss, currencyCode)
	return s
}

// CategoryStat is the per-category performance of a collection.
type CategoryStat struct {
	categories.Category
	AssetCount      int     `json:"assetCount"`
	TotalValue      float64 `json:"totalValue"`
	TotalCost       float64 `json:"totalCost"`
	GainLoss        float64 `json:"gainLoss"`
	GainLossPercent float64 `json:"gainLossPercent"`
	Performance     string  `json:"performance"` // "gain" or "loss"
}

// CategoryStats reports every registered category, including empty ones,
// sorted by total value descending.
func CategoryStats(assets []models.Asset) []CategoryStat {
	all := categories.All()
	stats := make([]CategoryStat, 0, len(all))
	for _, cat := range all {
		value, cost := decimal.Zero, decimal.Zero
		count := 0
		for i := range assets {
			if assets[i].Category != cat.ID {
				continue
			}
			count++
			value = value.Add(decimal.NewFromFloat(assets[i].CurrentValue))
			cost = cost.Add(decimal.NewFromFloat(assets[i].PurchasePrice))
		}
		gain := value.Sub(cost)
		percent := 0.0
		if cost.IsPositive() {
			percent = gain.Div(cost).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		perf := "loss"
		if percent > 0 {
			perf = "gain"
		}
		stats = append(stats, CategoryStat{
			Category:        cat,
			AssetCount:      count,
			TotalValue:      value.InexactFloat64(),
			TotalCost:       cost.InexactFloat64(),
			GainLoss:        gain.InexactFloat64(),
			GainLossPercent: percent,
			Performance:     perf,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalValue > stats[j].TotalValue
	})
	return stats
}

// FavoritesSummary aggregates the favorite assets.
type FavoritesSummary struct {
	Count        int           `json:"count"`
	TotalValue   float64       `json:"totalValue"`
	TotalCost    float64       `json:"totalCost"`
	GainLoss     float64       `json:"gainLoss"`
	TopPerformer *models.Asset `json:"topPerformer"`
}

// FavoritesStats summarizes favorites. The top performer is the favorite with
// the highest gain percentage; assets without a purchase price never win.
func FavoritesStats(assets []models.Asset) FavoritesSummary {
	value, cost := decimal.Zero, decimal.Zero
	var out FavoritesSummary
	var best *models.Asset
	for i := range assets {
		a := &assets[i]
		if !a.IsFavorite {
			continue
		}
		out.Count++
		value = value.Add(decimal.NewFromFloat(a.CurrentValue))
		cost = cost.Add(decimal.NewFromFloat(a.PurchasePrice))
		if a.PurchasePrice == 0 {
			continue
		}
		if best == nil || a.GainLossPercent() > best.GainLossPercent() {
			best = a
		}
	}
	out.TotalValue = value.InexactFloat64()
	out.TotalCost = cost.InexactFloat64()
	out.GainLoss = value.Sub(cost).InexactFloat64()
	if best != nil {
		b := best.Clone()
		out.TopPerformer = &b
	}
	return out
}

// Recent returns up to n assets ordered by UpdatedAt, newest first.
func Recent(assets []models.Asset, n int) []models.Asset {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	out := cloneAll(assets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func cloneAll(assets []models.Asset) []models.Asset {
	out := make([]models.Asset, len(assets))
	for i := range assets {
		out[i] = assets[i].Clone()
	}
	return out
}
