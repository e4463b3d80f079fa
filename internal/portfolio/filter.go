package portfolio

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"assetvault/internal/models"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortValueDesc   SortKey = "value_desc"
	SortValueAsc    SortKey = "value_asc"
	SortNameAsc     SortKey = "name_asc"
	SortNameDesc    SortKey = "name_desc"
	SortDateDesc    SortKey = "date_desc"
	SortDateAsc     SortKey = "date_asc"
	SortPerformance SortKey = "performance"
)

// SortKeys lists every recognized sort key.
var SortKeys = []SortKey{
	SortValueDesc, SortValueAsc, SortNameAsc, SortNameDesc, SortDateDesc, SortDateAsc, SortPerformance,
}

// Valid reports whether k is a recognized sort key.
func (k SortKey) Valid() bool {
	for _, s := range SortKeys {
		if s == k {
			return true
		}
	}
	return false
}

// Criteria narrows a collection. Zero-valued fields are ignored; the rest
// combine with AND.
type Criteria struct {
	Category    string   `form:"category"`
	Subcategory string   `form:"subcategory"`
	Search      string   `form:"search"`
	Tags        []string `form:"tags"` // matches any
	Favorites   bool     `form:"favorites"`
	MinValue    *float64 `form:"minValue"`
	MaxValue    *float64 `form:"maxValue"`
	SortBy      SortKey  `form:"sortBy"`
}

// searchDetails are the detail fields the free-text search looks at.
var searchDetails = []string{"make", "model", "brand"}

// Filter returns the assets matching c, sorted by c.SortBy. The input slice
// is never modified; an unknown sort key keeps the input order.
func Filter(assets []models.Asset, c Criteria) []models.Asset {
	search := strings.ToLower(c.Search)

	out := make([]models.Asset, 0, len(assets))
	for i := range assets {
		a := &assets[i]
		if c.Category != "" && a.Category != c.Category {
			continue
		}
		if c.Subcategory != "" && a.Subcategory != c.Subcategory {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		if len(c.Tags) > 0 && !hasAnyTag(a, c.Tags) {
			continue
		}
		if c.Favorites && !a.IsFavorite {
			continue
		}
		if c.MinValue != nil && a.CurrentValue < *c.MinValue {
			continue
		}
		if c.MaxValue != nil && a.CurrentValue > *c.MaxValue {
			continue
		}
		out = append(out, a.Clone())
	}

	Sort(out, c.SortBy)
	return out
}

// Sort orders assets in place by key. The sort is stable.
func Sort(assets []models.Asset, key SortKey) {
	var less func(a, b *models.Asset) bool
	switch key {
	case SortValueDesc:
		less = func(a, b *models.Asset) bool { return a.CurrentValue > b.CurrentValue }
	case SortValueAsc:
		less = func(a, b *models.Asset) bool { return a.CurrentValue < b.CurrentValue }
	case SortNameAsc, SortNameDesc:
		col := collate.New(language.English)
		dir := 1
		if key == SortNameDesc {
			dir = -1
		}
		less = func(a, b *models.Asset) bool { return dir*col.CompareString(a.Name, b.Name) < 0 }
	case SortDateDesc:
		less = func(a, b *models.Asset) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortDateAsc:
		less = func(a, b *models.Asset) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortPerformance:
		less = func(a, b *models.Asset) bool { return a.GainLossPercent() > b.GainLossPercent() }
	default:
		return
	}
	sort.SliceStable(assets, func(i, j int) bool { return less(&assets[i], &assets[j]) })
}

func matchesSearch(a *models.Asset, search string) bool {
	if strings.Contains(strings.ToLower(a.Name), search) {
		return true
	}
	for _, k := range searchDetails {
		if v := a.Details.Get(k); v != "" && strings.Contains(strings.ToLower(v), search) {
			return true
		}
	}
	return false
}

func hasAnyTag(a *models.Asset, tags []string) bool {
	for _, t := range tags {
		if a.HasTag(t) {
			return true
		}
	}
	return false
}
