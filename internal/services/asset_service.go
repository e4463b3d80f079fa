package services

import (
	"context"
	"sync"

	"assetvault/internal/categories"
	apperrors "assetvault/internal/errors"
	"assetvault/internal/identity"
	"assetvault/internal/logger"
	"assetvault/internal/models"
	"assetvault/internal/portfolio"
	"assetvault/internal/revaluer"
)

// assetService resolves identities to namespace stores. Each store is loaded
// once and kept for the life of the process.
type assetService struct {
	binder   *identity.Binder
	currency string

	mu     sync.Mutex
	stores map[string]*portfolio.Store
}

// AssetServiceOption configures the asset service.
type AssetServiceOption func(*assetService)

// WithCurrency sets the currency used for formatted summary totals.
func WithCurrency(code string) AssetServiceOption {
	return func(s *assetService) {
		if code != "" {
			s.currency = code
		}
	}
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(binder *identity.Binder, opts ...AssetServiceOption) AssetServicer {
	s := &assetService{
		binder:   binder,
		currency: portfolio.DefaultCurrency,
		stores:   make(map[string]*portfolio.Store),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// store returns the loaded store of ident's namespace. A backend failure is
// returned and not cached, so the next call retries the load.
func (s *assetService) store(ident *identity.Identity) (*portfolio.Store, error) {
	ns := s.binder.Namespace(ident)

	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stores[ns]; ok {
		return st, nil
	}

	st := portfolio.NewStore(s.binder, portfolio.WithCurrency(s.currency))
	if err := st.Load(ident); err != nil {
		logger.Get().Errorw("failed to load asset namespace", "namespace", ns, "error", err)
		return nil, err
	}
	s.stores[ns] = st
	return st, nil
}

// Snapshot returns the namespace's assets with its loading and error flags.
func (s *assetService) Snapshot(ident *identity.Identity) (*AssetSnapshot, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	return &AssetSnapshot{
		Namespace: st.Namespace(),
		Assets:    st.Assets(),
		Loading:   st.Loading(),
		Error:     st.Err(),
	}, nil
}

// ListAssets returns the assets matching criteria, in criteria's sort order.
func (s *assetService) ListAssets(ident *identity.Identity, criteria portfolio.Criteria) ([]models.Asset, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	return st.Filter(criteria), nil
}

// GetAsset returns one asset or ErrAssetNotFound.
func (s *assetService) GetAsset(ident *identity.Identity, assetID string) (*models.Asset, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	a, ok := st.Get(assetID)
	if !ok {
		return nil, apperrors.ErrAssetNotFound
	}
	return &a, nil
}

// AddAsset creates an asset. The category must be registered; a subcategory,
// when given, must belong to it.
func (s *assetService) AddAsset(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error) {
	if err := validateCategory(draft.Category, draft.Subcategory); err != nil {
		return nil, err
	}
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	a := st.Add(draft)
	return &a, nil
}

// UpdateAsset merges patch into an asset. The bool is false when the id is unknown.
func (s *assetService) UpdateAsset(ident *identity.Identity, assetID string, patch models.AssetPatch) (*models.Asset, bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, false, err
	}

	current, ok := st.Get(assetID)
	if !ok {
		return nil, false, nil
	}

	if patch.Category != nil || patch.Subcategory != nil {
		category, sub := current.Category, current.Subcategory
		if patch.Category != nil {
			category = *patch.Category
			// a bare category change cannot keep a subcategory of the old one
			if patch.Subcategory == nil && !categories.HasSubcategory(category, sub) {
				def := categories.DefaultSubcategory(category)
				patch.Subcategory = &def
			}
		}
		if patch.Subcategory != nil {
			sub = *patch.Subcategory
		}
		if err := validateCategory(category, sub); err != nil {
			return nil, false, err
		}
	}

	a, ok := st.Update(assetID, patch)
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

// DeleteAsset removes an asset. The bool is false when the id is unknown.
func (s *assetService) DeleteAsset(ident *identity.Identity, assetID string) (bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return false, err
	}
	return st.Remove(assetID), nil
}

// ToggleFavorite flips an asset's favorite flag.
func (s *assetService) ToggleFavorite(ident *identity.Identity, assetID string) (*models.Asset, bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, false, err
	}
	a, ok := st.ToggleFavorite(assetID)
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

// UpdateAssetValue records a new current value.
func (s *assetService) UpdateAssetValue(ident *identity.Identity, assetID string, value float64) (*models.Asset, bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, false, err
	}
	a, ok, err := st.SetValue(assetID, value)
	if err != nil || !ok {
		return nil, false, err
	}
	return &a, true, nil
}

// AddPhotos appends photos to an asset.
func (s *assetService) AddPhotos(ident *identity.Identity, assetID string, photos []models.Photo) (*models.Asset, bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, false, err
	}
	a, ok := st.AddPhotos(assetID, photos)
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

// RemovePhoto detaches one photo from an asset.
func (s *assetService) RemovePhoto(ident *identity.Identity, assetID, photoID string) (*models.Asset, bool, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, false, err
	}
	a, ok := st.RemovePhoto(assetID, photoID)
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

// Summary returns the portfolio summary of the namespace.
func (s *assetService) Summary(ident *identity.Identity) (*portfolio.Summary, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	sum := st.Summary()
	return &sum, nil
}

// RecentAssets returns the n most recently updated assets.
func (s *assetService) RecentAssets(ident *identity.Identity, n int) ([]models.Asset, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	return st.Recent(n), nil
}

// CategoryStats returns per-category aggregates for every registered category.
func (s *assetService) CategoryStats(ident *identity.Identity) ([]portfolio.CategoryStat, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	return st.CategoryStats(), nil
}

// FavoritesStats returns aggregates over favorited assets.
func (s *assetService) FavoritesStats(ident *identity.Identity) (*portfolio.FavoritesSummary, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	fav := st.FavoritesStats()
	return &fav, nil
}

// Revalue applies depreciation estimates to the namespace's assets.
func (s *assetService) Revalue(ctx context.Context, ident *identity.Identity, dryRun bool) (*revaluer.RunResult, error) {
	st, err := s.store(ident)
	if err != nil {
		return nil, err
	}
	return revaluer.New(st, revaluer.DryRun(dryRun)).Run(ctx)
}

// StoreError returns the namespace's non-fatal error flag.
func (s *assetService) StoreError(ident *identity.Identity) error {
	st, err := s.store(ident)
	if err != nil {
		return err
	}
	return st.Err()
}

// ClearError resets the namespace's non-fatal error flag.
func (s *assetService) ClearError(ident *identity.Identity) error {
	st, err := s.store(ident)
	if err != nil {
		return err
	}
	st.ClearErr()
	return nil
}

func validateCategory(category, subcategory string) error {
	if !categories.IsValid(category) {
		return apperrors.ErrInvalidCategory
	}
	if subcategory != "" && !categories.HasSubcategory(category, subcategory) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "subcategory does not belong to category")
	}
	return nil
}
