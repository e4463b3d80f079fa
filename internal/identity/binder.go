package identity

import (
	"encoding/json"
	"time"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/logger"
	"assetvault/internal/models"
	"assetvault/internal/storage"
)

// Binding is the outcome of preparing a namespace.
type Binding struct {
	Namespace string
	Assets    []models.Asset

	// LoadErr is set when persisted data could not be parsed and the demo
	// set was substituted. It is not fatal.
	LoadErr error

	Migrated bool // legacy data was moved into the namespace
	Seeded   bool // the namespace was initialized and persisted
}

// Binder loads a namespace's collection, migrating legacy data or seeding
// the demo set on first use.
type Binder struct {
	kv      storage.KV
	baseKey string
	seed    bool
	now     func() time.Time
}

// NewBinder creates a Binder. When seed is false, new namespaces start empty.
func NewBinder(kv storage.KV, baseKey string, seed bool) *Binder {
	return &Binder{kv: kv, baseKey: baseKey, seed: seed, now: time.Now}
}

// WithClock overrides the time source used for seeded timestamps.
func (b *Binder) WithClock(now func() time.Time) *Binder {
	b.now = now
	return b
}

// KV returns the backend the binder reads from.
func (b *Binder) KV() storage.KV {
	return b.kv
}

// Namespace returns the storage key for ident.
func (b *Binder) Namespace(ident *Identity) string {
	return Namespace(b.baseKey, ident)
}

// Bind resolves ident's namespace and returns its collection. Only a failing
// storage backend produces an error; unreadable data falls back to the demo
// set with LoadErr set.
func (b *Binder) Bind(ident *Identity) (Binding, error) {
	ns := b.Namespace(ident)
	log := logger.Namespace(ns)
	res := Binding{Namespace: ns}

	raw, ok, err := b.kv.Get(ns)
	if err != nil {
		return res, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	if ok {
		assets, err := decode(raw)
		if err != nil {
			// The unreadable slot is left as-is; the next mutation overwrites it.
			log.Warnw("failed to parse stored assets, using demo set", "error", err)
			res.Assets = DemoAssets(b.now())
			res.LoadErr = apperrors.Wrap(apperrors.ErrLoadFailed, err)
			return res, nil
		}
		res.Assets = assets
		return res, nil
	}

	if !ident.IsGuest() {
		legacy, ok, err := b.kv.Get(b.baseKey)
		if err != nil {
			return res, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}
		if ok {
			assets, err := decode(legacy)
			if err != nil {
				log.Warnw("failed to parse legacy assets, using demo set", "error", err)
				res.Assets = DemoAssets(b.now())
				res.LoadErr = apperrors.Wrap(apperrors.ErrLoadFailed, err)
				return res, nil
			}
			if err := b.kv.Set(ns, legacy); err != nil {
				return res, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
			}
			if err := b.kv.Delete(b.baseKey); err != nil {
				// The namespace now has data, so the migration cannot run twice.
				log.Warnw("failed to delete legacy assets after migration", "error", err)
			}
			log.Infow("migrated legacy assets", "count", len(assets))
			res.Assets = assets
			res.Migrated = true
			return res, nil
		}
	}

	assets := []models.Asset{}
	if b.seed {
		assets = DemoAssets(b.now())
	}
	data, err := json.Marshal(assets)
	if err != nil {
		return res, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := b.kv.Set(ns, data); err != nil {
		return res, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	}
	log.Infow("initialized namespace", "demo", b.seed, "count", len(assets))
	res.Assets = assets
	res.Seeded = true
	return res, nil
}

func decode(raw []byte) ([]models.Asset, error) {
	var assets []models.Asset
	if err := json.Unmarshal(raw, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}
