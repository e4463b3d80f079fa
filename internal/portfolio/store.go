// Package portfolio holds a namespace's asset collection and the pure
// functions that summarize and query it.
package portfolio

import (
	"encoding/json"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"assetvault/internal/categories"
	apperrors "assetvault/internal/errors"
	"assetvault/internal/id"
	"assetvault/internal/identity"
	"assetvault/internal/logger"
	"assetvault/internal/models"
)

// Store is the in-memory collection of one namespace. Every mutation writes
// the full collection back to the namespace's slot before returning. Memory
// stays authoritative: a failed write is recorded in Err and not rolled back.
type Store struct {
	mu sync.Mutex

	binder   *identity.Binder
	currency string
	now      func() time.Time

	namespace string
	assets    []models.Asset
	err       error

	loading atomic.Bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithCurrency sets the ISO currency used for formatted totals.
func WithCurrency(code string) Option {
	return func(s *Store) { s.currency = code }
}

// NewStore creates an empty store. Call Load before mutating it.
func NewStore(binder *identity.Binder, opts ...Option) *Store {
	s := &Store{
		binder:   binder,
		currency: DefaultCurrency,
		now:      time.Now,
		assets:   []models.Asset{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load switches the store to ident's namespace. Unreadable data leaves the
// demo set loaded with Err set; a failing backend leaves the store empty and
// is returned.
func (s *Store) Load(ident *identity.Identity) error {
	s.loading.Store(true)
	defer s.loading.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.binder.Bind(ident)
	s.namespace = res.Namespace
	if err != nil {
		s.assets = []models.Asset{}
		s.err = err
		return err
	}
	s.assets = res.Assets
	s.err = res.LoadErr
	return nil
}

// Add creates an asset from draft and puts it first in the collection.
func (s *Store) Add(draft models.AssetDraft) models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	a := models.Asset{
		ID:              id.New(),
		Name:            strings.TrimSpace(draft.Name),
		Category:        draft.Category,
		Subcategory:     draft.Subcategory,
		PurchasePrice:   draft.PurchasePrice.Float(),
		CurrentValue:    draft.PurchasePrice.Float(),
		PurchaseDate:    draft.PurchaseDate,
		LastValueUpdate: now,
		Condition:       draft.Condition,
		Details:         models.Details{},
		Tags:            uniqueTags(draft.Tags),
		Photos:          s.preparePhotos(nil, draft.Photos, now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if draft.CurrentValue != nil {
		a.CurrentValue = draft.CurrentValue.Float()
	}
	if a.Subcategory == "" {
		a.Subcategory = categories.DefaultSubcategory(a.Category)
	}
	if a.PurchaseDate == "" {
		a.PurchaseDate = now.Format(models.DateLayout)
	}
	if a.Condition == "" {
		a.Condition = models.ConditionExcellent
	}
	for k, v := range draft.Details {
		a.Details[k] = v
	}

	s.assets = append([]models.Asset{a}, s.assets...)
	s.persist()
	return a.Clone()
}

// Update merges patch into the asset with the given id. It reports false and
// changes nothing when the id is unknown.
func (s *Store) Update(assetID string, patch models.AssetPatch) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false
	}

	now := s.clock()
	a := &s.assets[i]
	if patch.Name != nil {
		a.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		a.Subcategory = *patch.Subcategory
	}
	if patch.PurchasePrice != nil {
		a.PurchasePrice = *patch.PurchasePrice
	}
	if patch.CurrentValue != nil && *patch.CurrentValue != a.CurrentValue {
		a.CurrentValue = *patch.CurrentValue
		a.LastValueUpdate = now
	}
	if patch.PurchaseDate != nil {
		a.PurchaseDate = *patch.PurchaseDate
	}
	if patch.Condition != nil {
		a.Condition = *patch.Condition
	}
	if patch.Details != nil {
		a.Details = make(models.Details, len(patch.Details))
		for k, v := range patch.Details {
			a.Details[k] = v
		}
	}
	if patch.Tags != nil {
		a.Tags = uniqueTags(*patch.Tags)
	}
	if patch.Photos != nil {
		a.Photos = s.preparePhotos(nil, *patch.Photos, now)
	}
	if patch.IsFavorite != nil {
		a.IsFavorite = *patch.IsFavorite
	}
	a.UpdatedAt = now

	s.persist()
	return a.Clone(), true
}

// Remove deletes the asset with the given id and reports whether it existed.
func (s *Store) Remove(assetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return false
	}
	s.assets = append(s.assets[:i:i], s.assets[i+1:]...)
	s.persist()
	return true
}

// ToggleFavorite flips the favorite flag of the asset.
func (s *Store) ToggleFavorite(assetID string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false
	}
	a := &s.assets[i]
	a.IsFavorite = !a.IsFavorite
	a.UpdatedAt = s.clock()

	s.persist()
	return a.Clone(), true
}

// SetValue records a new current value. Negative values are accepted; NaN
// and infinities are rejected.
func (s *Store) SetValue(assetID string, value float64) (models.Asset, bool, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.Asset{}, false, apperrors.ErrInvalidValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false, nil
	}
	now := s.clock()
	a := &s.assets[i]
	a.CurrentValue = value
	a.LastValueUpdate = now
	a.UpdatedAt = now

	s.persist()
	return a.Clone(), true, nil
}

// AddPhotos appends photos to the asset, assigning ids where missing.
func (s *Store) AddPhotos(assetID string, photos []models.Photo) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false
	}
	now := s.clock()
	a := &s.assets[i]
	a.Photos = s.preparePhotos(a.Photos, photos, now)
	a.UpdatedAt = now

	s.persist()
	return a.Clone(), true
}

// RemovePhoto detaches a photo from the asset. It reports false when either
// the asset or the photo is unknown.
func (s *Store) RemovePhoto(assetID, photoID string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false
	}
	a := &s.assets[i]
	for j := range a.Photos {
		if a.Photos[j].ID == photoID {
			a.Photos = append(a.Photos[:j:j], a.Photos[j+1:]...)
			a.UpdatedAt = s.clock()
			s.persist()
			return a.Clone(), true
		}
	}
	return a.Clone(), false
}

// Assets returns a copy of the collection in store order.
func (s *Store) Assets() []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.assets)
}

// Get returns the asset with the given id.
func (s *Store) Get(assetID string) (models.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(assetID)
	if i < 0 {
		return models.Asset{}, false
	}
	return s.assets[i].Clone(), true
}

// Namespace returns the slot key of the loaded collection.
func (s *Store) Namespace() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.namespace
}

// Loading reports whether a Load is in progress.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Err returns the last non-fatal load or persist error.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ClearErr resets the error flag.
func (s *Store) ClearErr() {
	s.mu.Lock()
	s.err = nil
	s.mu.Unlock()
}

// Summary aggregates the current collection.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.assets, s.currency)
}

// Filter applies c to the current collection.
func (s *Store) Filter(c Criteria) []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.assets, c)
}

// Recent returns the n most recently updated assets.
func (s *Store) Recent(n int) []models.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Recent(s.assets, n)
}

// CategoryStats reports per-category performance of the collection.
func (s *Store) CategoryStats() []CategoryStat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CategoryStats(s.assets)
}

// FavoritesStats summarizes the favorite assets.
func (s *Store) FavoritesStats() FavoritesSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FavoritesStats(s.assets)
}

// persist writes the collection to the namespace slot. Callers hold s.mu.
func (s *Store) persist() {
	data, err := json.Marshal(s.assets)
	if err == nil {
		err = s.binder.KV().Set(s.namespace, data)
	}
	if err != nil {
		logger.Namespace(s.namespace).Errorw("failed to persist assets", "error", err, "count", len(s.assets))
		s.err = apperrors.Wrap(apperrors.ErrPersistFailed, err)
	}
}

func (s *Store) indexOf(assetID string) int {
	for i := range s.assets {
		if s.assets[i].ID == assetID {
			return i
		}
	}
	return -1
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

// preparePhotos appends incoming to existing, filling in missing ids and
// upload times and dropping ids already present.
func (s *Store) preparePhotos(existing, incoming []models.Photo, now time.Time) []models.Photo {
	out := make([]models.Photo, 0, len(existing)+len(incoming))
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, p := range existing {
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, p := range incoming {
		if p.ID == "" {
			p.ID = id.Photo()
		}
		if seen[p.ID] {
			continue
		}
		if p.UploadedAt.IsZero() {
			p.UploadedAt = now
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

func uniqueTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
