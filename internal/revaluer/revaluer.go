// Package revaluer refreshes current values from each category's
// depreciation rate.
package revaluer

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"assetvault/internal/categories"
	"assetvault/internal/logger"
	"assetvault/internal/models"
)

// minChange is the smallest difference, in currency units, worth recording.
const minChange = 0.01

// AssetStore defines the store operations needed by the revaluer.
type AssetStore interface {
	Assets() []models.Asset
	SetValue(assetID string, value float64) (models.Asset, bool, error)
}

// Change is one value the run updated (or would update in a dry run).
type Change struct {
	AssetID string  `json:"assetId"`
	Name    string  `json:"name"`
	From    float64 `json:"from"`
	To      float64 `json:"to"`
}

// RunResult contains the outcome of a revaluation run.
type RunResult struct {
	AssetsScanned int           `json:"assetsScanned"`
	ValuesUpdated int           `json:"valuesUpdated"`
	Skipped       int           `json:"skipped"`
	DryRun        bool          `json:"dryRun"`
	Changes       []Change      `json:"changes"`
	Duration      time.Duration `json:"duration"`
}

// Revaluer applies depreciation estimates to a store.
type Revaluer struct {
	store  AssetStore
	dryRun bool
	now    func() time.Time
	logger *zap.SugaredLogger
}

// Option configures a Revaluer.
type Option func(*Revaluer)

// DryRun computes changes without writing them.
func DryRun(enabled bool) Option {
	return func(r *Revaluer) { r.dryRun = enabled }
}

// WithClock overrides the time source used for depreciation.
func WithClock(now func() time.Time) Option {
	return func(r *Revaluer) { r.now = now }
}

// New creates a Revaluer over store.
func New(store AssetStore, opts ...Option) *Revaluer {
	r := &Revaluer{
		store:  store,
		now:    time.Now,
		logger: logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run estimates every asset whose category depreciates and records values
// that moved by at least one cent. Cancellation is checked between assets;
// changes made before it are kept and reported.
func (r *Revaluer) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{DryRun: r.dryRun, Changes: []Change{}}
	now := r.now()

	for _, a := range r.store.Assets() {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
		result.AssetsScanned++

		cat, ok := categories.Get(a.Category)
		if !ok || cat.DepreciationRate == 0 {
			result.Skipped++
			continue
		}

		estimate := math.Round(categories.EstimateValue(a.PurchasePrice, a.PurchaseDate, cat.DepreciationRate, now)*100) / 100
		if math.Abs(estimate-a.CurrentValue) < minChange {
			result.Skipped++
			continue
		}

		change := Change{AssetID: a.ID, Name: a.Name, From: a.CurrentValue, To: estimate}
		if !r.dryRun {
			_, found, err := r.store.SetValue(a.ID, estimate)
			if err != nil {
				return nil, err
			}
			if !found {
				// Removed since the snapshot was taken.
				result.Skipped++
				continue
			}
		}
		result.Changes = append(result.Changes, change)
		result.ValuesUpdated++
	}

	result.Duration = time.Since(start)
	r.logger.Infow("revaluation completed",
		"assets_scanned", result.AssetsScanned,
		"values_updated", result.ValuesUpdated,
		"skipped", result.Skipped,
		"dry_run", result.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}
