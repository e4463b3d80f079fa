package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/identity"
	"assetvault/internal/models"
	"assetvault/internal/portfolio"
	"assetvault/internal/revaluer"
	"assetvault/internal/services"
)

// --- mock asset service ---

type mockAssetService struct {
	snapshotFn       func(ident *identity.Identity) (*services.AssetSnapshot, error)
	listAssetsFn     func(ident *identity.Identity, criteria portfolio.Criteria) ([]models.Asset, error)
	getAssetFn       func(ident *identity.Identity, assetID string) (*models.Asset, error)
	addAssetFn       func(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error)
	updateAssetFn    func(ident *identity.Identity, assetID string, patch models.AssetPatch) (*models.Asset, bool, error)
	deleteAssetFn    func(ident *identity.Identity, assetID string) (bool, error)
	toggleFavoriteFn func(ident *identity.Identity, assetID string) (*models.Asset, bool, error)
	updateValueFn    func(ident *identity.Identity, assetID string, value float64) (*models.Asset, bool, error)
	addPhotosFn      func(ident *identity.Identity, assetID string, photos []models.Photo) (*models.Asset, bool, error)
	removePhotoFn    func(ident *identity.Identity, assetID, photoID string) (*models.Asset, bool, error)
	summaryFn        func(ident *identity.Identity) (*portfolio.Summary, error)
	recentFn         func(ident *identity.Identity, n int) ([]models.Asset, error)
	revalueFn        func(ctx context.Context, ident *identity.Identity, dryRun bool) (*revaluer.RunResult, error)
	storeErr         error
	cleared          bool
}

func (m *mockAssetService) Snapshot(ident *identity.Identity) (*services.AssetSnapshot, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ident)
	}
	return &services.AssetSnapshot{Namespace: identity.Namespace("personal_assets", ident), Assets: []models.Asset{}}, nil
}

func (m *mockAssetService) ListAssets(ident *identity.Identity, criteria portfolio.Criteria) ([]models.Asset, error) {
	if m.listAssetsFn != nil {
		return m.listAssetsFn(ident, criteria)
	}
	return []models.Asset{}, nil
}

func (m *mockAssetService) GetAsset(ident *identity.Identity, assetID string) (*models.Asset, error) {
	if m.getAssetFn != nil {
		return m.getAssetFn(ident, assetID)
	}
	return &models.Asset{ID: assetID}, nil
}

func (m *mockAssetService) AddAsset(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error) {
	if m.addAssetFn != nil {
		return m.addAssetFn(ident, draft)
	}
	return &models.Asset{ID: "new", Name: draft.Name, Category: draft.Category}, nil
}

func (m *mockAssetService) UpdateAsset(ident *identity.Identity, assetID string, patch models.AssetPatch) (*models.Asset, bool, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(ident, assetID, patch)
	}
	return &models.Asset{ID: assetID}, true, nil
}

func (m *mockAssetService) DeleteAsset(ident *identity.Identity, assetID string) (bool, error) {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(ident, assetID)
	}
	return true, nil
}

func (m *mockAssetService) ToggleFavorite(ident *identity.Identity, assetID string) (*models.Asset, bool, error) {
	if m.toggleFavoriteFn != nil {
		return m.toggleFavoriteFn(ident, assetID)
	}
	return &models.Asset{ID: assetID, IsFavorite: true}, true, nil
}

func (m *mockAssetService) UpdateAssetValue(ident *identity.Identity, assetID string, value float64) (*models.Asset, bool, error) {
	if m.updateValueFn != nil {
		return m.updateValueFn(ident, assetID, value)
	}
	return &models.Asset{ID: assetID, CurrentValue: value}, true, nil
}

func (m *mockAssetService) AddPhotos(ident *identity.Identity, assetID string, photos []models.Photo) (*models.Asset, bool, error) {
	if m.addPhotosFn != nil {
		return m.addPhotosFn(ident, assetID, photos)
	}
	return &models.Asset{ID: assetID, Photos: photos}, true, nil
}

func (m *mockAssetService) RemovePhoto(ident *identity.Identity, assetID, photoID string) (*models.Asset, bool, error) {
	if m.removePhotoFn != nil {
		return m.removePhotoFn(ident, assetID, photoID)
	}
	return &models.Asset{ID: assetID}, true, nil
}

func (m *mockAssetService) Summary(ident *identity.Identity) (*portfolio.Summary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ident)
	}
	s := portfolio.Summarize(nil, "USD")
	return &s, nil
}

func (m *mockAssetService) RecentAssets(ident *identity.Identity, n int) ([]models.Asset, error) {
	if m.recentFn != nil {
		return m.recentFn(ident, n)
	}
	return []models.Asset{}, nil
}

func (m *mockAssetService) CategoryStats(*identity.Identity) ([]portfolio.CategoryStat, error) {
	return portfolio.CategoryStats(nil), nil
}

func (m *mockAssetService) FavoritesStats(*identity.Identity) (*portfolio.FavoritesSummary, error) {
	return &portfolio.FavoritesSummary{}, nil
}

func (m *mockAssetService) Revalue(ctx context.Context, ident *identity.Identity, dryRun bool) (*revaluer.RunResult, error) {
	if m.revalueFn != nil {
		return m.revalueFn(ctx, ident, dryRun)
	}
	return &revaluer.RunResult{DryRun: dryRun, Changes: []revaluer.Change{}}, nil
}

func (m *mockAssetService) StoreError(*identity.Identity) error { return m.storeErr }

func (m *mockAssetService) ClearError(*identity.Identity) error {
	m.cleared = true
	return nil
}

var _ services.AssetServicer = (*mockAssetService)(nil)

func setupAssetRouter(handler *AssetHandler) *gin.Engine {
	r := gin.New()
	RegisterAssetRoutes(r.Group("", injectUserID("user-1")), handler)
	RegisterAssetRoutes(r.Group("/guest"), handler)
	return r
}

func TestAssetHandler_CreateAsset(t *testing.T) {
	t.Run("returns 201 and audits", func(t *testing.T) {
		var gotIdent *identity.Identity
		svc := &mockAssetService{
			addAssetFn: func(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error) {
				gotIdent = ident
				return &models.Asset{ID: "a1", Name: draft.Name, Category: draft.Category, CurrentValue: draft.PurchasePrice.Float()}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAssetRouter(NewAssetHandler(svc, audit, 5))

		rec := doRequest(r, "POST", "/assets", `{"name":"Rolex","category":"luxury","purchasePrice":"8500"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		asset := result["asset"].(map[string]interface{})
		if asset["name"] != "Rolex" || asset["currentValue"] != 8500.0 {
			t.Errorf("unexpected asset: %v", asset)
		}
		if result["error"] != nil {
			t.Errorf("expected no error flag, got %v", result["error"])
		}
		if gotIdent == nil || gotIdent.ID != "user-1" {
			t.Errorf("expected identity of user-1, got %+v", gotIdent)
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != "CREATE_ASSET" {
			t.Errorf("expected CREATE_ASSET audit entry, got %+v", audit.entries)
		}
	})

	t.Run("blank current value is passed as absent", func(t *testing.T) {
		var got models.AssetDraft
		svc := &mockAssetService{
			addAssetFn: func(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error) {
				got = draft
				return &models.Asset{ID: "a1"}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets", `{"name":"Watch","category":"luxury","purchasePrice":"1000","currentValue":""}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.CurrentValue != nil {
			t.Errorf("expected no current value, got %v", *got.CurrentValue)
		}
		if got.PurchasePrice != 1000 {
			t.Errorf("expected purchase price 1000, got %v", got.PurchasePrice)
		}
	})

	t.Run("guest route uses guest identity and is not audited", func(t *testing.T) {
		var gotIdent = &identity.Identity{ID: "sentinel"}
		svc := &mockAssetService{
			addAssetFn: func(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error) {
				gotIdent = ident
				return &models.Asset{ID: "a1"}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAssetRouter(NewAssetHandler(svc, audit, 5))

		rec := doRequest(r, "POST", "/guest/assets", `{"name":"Lamp","category":"home"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotIdent.IsGuest() {
			t.Errorf("expected guest identity, got %+v", gotIdent)
		}
		if len(audit.entries) != 0 {
			t.Errorf("guest mutations should not be audited, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets", `{"name":"Ship","category":"spaceship"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("includes store error flag", func(t *testing.T) {
		svc := &mockAssetService{storeErr: apperrors.ErrPersistFailed}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets", `{"name":"TV","category":"electronics","purchasePrice":500}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PERSIST_FAILED")
	})
}

func TestAssetHandler_ListAssets(t *testing.T) {
	t.Run("binds criteria and paginates", func(t *testing.T) {
		var got portfolio.Criteria
		svc := &mockAssetService{
			listAssetsFn: func(_ *identity.Identity, c portfolio.Criteria) ([]models.Asset, error) {
				got = c
				return []models.Asset{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/assets?category=vehicle&search=tesla&tags=daily&tags=ev&favorites=true&minValue=100&sortBy=name_asc&page=2&page_size=2", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Category != "vehicle" || got.Search != "tesla" || !got.Favorites || got.SortBy != portfolio.SortNameAsc {
			t.Errorf("unexpected criteria: %+v", got)
		}
		if len(got.Tags) != 2 || got.MinValue == nil || *got.MinValue != 100 || got.MaxValue != nil {
			t.Errorf("unexpected criteria: %+v", got)
		}
		page := parseJSON(t, rec)["assets"].(map[string]interface{})
		data := page["data"].([]interface{})
		if len(data) != 1 || page["total_items"] != 3.0 {
			t.Errorf("unexpected page: %v", page)
		}
	})

	t.Run("returns 400 on unknown sort key", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/assets?sortBy=random", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 503 when storage is unavailable", func(t *testing.T) {
		svc := &mockAssetService{
			listAssetsFn: func(*identity.Identity, portfolio.Criteria) ([]models.Asset, error) {
				return nil, apperrors.ErrStorageUnavailable
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/assets", "")

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "STORAGE_UNAVAILABLE")
	})
}

func TestAssetHandler_GetAsset(t *testing.T) {
	svc := &mockAssetService{
		getAssetFn: func(_ *identity.Identity, id string) (*models.Asset, error) {
			if id == "missing" {
				return nil, apperrors.ErrAssetNotFound
			}
			return &models.Asset{ID: id, Category: "vehicle", Details: models.Details{"make": "Tesla"}}, nil
		},
	}
	r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

	t.Run("found", func(t *testing.T) {
		rec := doRequest(r, "GET", "/assets/a1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(r, "GET", "/assets/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ASSET_NOT_FOUND")
	})

	t.Run("editable fields", func(t *testing.T) {
		rec := doRequest(r, "GET", "/assets/a1/fields", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		fields := parseJSON(t, rec)["fields"].([]interface{})
		first := fields[0].(map[string]interface{})
		if first["key"] != "make" || first["value"] != "Tesla" {
			t.Errorf("unexpected first field: %v", first)
		}
	})
}

func TestAssetHandler_Mutations(t *testing.T) {
	t.Run("update with unknown id reports updated false", func(t *testing.T) {
		svc := &mockAssetService{
			updateAssetFn: func(*identity.Identity, string, models.AssetPatch) (*models.Asset, bool, error) {
				return nil, false, nil
			},
		}
		audit := &mockAuditService{}
		r := setupAssetRouter(NewAssetHandler(svc, audit, 5))

		rec := doRequest(r, "PATCH", "/assets/missing", `{"name":"x"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["updated"] != false {
			t.Error("expected updated=false")
		}
		if len(audit.entries) != 0 {
			t.Error("no-op update should not be audited")
		}
	})

	t.Run("update with empty patch is rejected", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "PATCH", "/assets/a1", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete returns 204 either way", func(t *testing.T) {
		for _, removed := range []bool{true, false} {
			svc := &mockAssetService{
				deleteAssetFn: func(*identity.Identity, string) (bool, error) { return removed, nil },
			}
			r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

			rec := doRequest(r, "DELETE", "/assets/a1", "")

			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected 204 (removed=%v), got %d", removed, rec.Code)
			}
		}
	})

	t.Run("set value requires a value", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "PUT", "/assets/a1/value", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		rec = doRequest(r, "PUT", "/assets/a1/value", `{"value":-50}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for negative value, got %d", rec.Code)
		}
		asset := parseJSON(t, rec)["asset"].(map[string]interface{})
		if asset["currentValue"] != -50.0 {
			t.Errorf("expected -50, got %v", asset["currentValue"])
		}
	})

	t.Run("favorite", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets/a1/favorite", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["asset"].(map[string]interface{})["isFavorite"] != true {
			t.Error("expected favorite asset")
		}
	})

	t.Run("photos", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets/a1/photos", `{"photos":[]}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty photos, got %d", rec.Code)
		}

		rec = doRequest(r, "POST", "/assets/a1/photos", `{"photos":[{"url":"blob:x","caption":"front.jpg"}]}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = doRequest(r, "DELETE", "/assets/a1/photos/p1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("clear error", func(t *testing.T) {
		svc := &mockAssetService{}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "DELETE", "/assets/error", "")

		if rec.Code != http.StatusNoContent || !svc.cleared {
			t.Fatalf("expected 204 and cleared flag, got %d", rec.Code)
		}
	})
}

func TestAssetHandler_Portfolio(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/assets/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		summary := parseJSON(t, rec)["summary"].(map[string]interface{})
		if summary["formattedTotalValue"] != "$0.00" {
			t.Errorf("unexpected summary: %v", summary)
		}
	})

	t.Run("recent uses configured default", func(t *testing.T) {
		var gotN int
		svc := &mockAssetService{
			recentFn: func(_ *identity.Identity, n int) ([]models.Asset, error) {
				gotN = n
				return []models.Asset{}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 7))

		doRequest(r, "GET", "/assets/recent", "")
		if gotN != 7 {
			t.Errorf("expected default 7, got %d", gotN)
		}
		doRequest(r, "GET", "/assets/recent?limit=3", "")
		if gotN != 3 {
			t.Errorf("expected 3, got %d", gotN)
		}
	})

	t.Run("category stats include every category", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/assets/categories", "")

		if got := len(parseJSON(t, rec)["categories"].([]interface{})); got != 5 {
			t.Errorf("expected 5 categories, got %d", got)
		}
	})

	t.Run("revalue passes dry run", func(t *testing.T) {
		var gotDry bool
		svc := &mockAssetService{
			revalueFn: func(_ context.Context, _ *identity.Identity, dryRun bool) (*revaluer.RunResult, error) {
				gotDry = dryRun
				return &revaluer.RunResult{DryRun: dryRun}, nil
			},
		}
		r := setupAssetRouter(NewAssetHandler(svc, &mockAuditService{}, 5))

		rec := doRequest(r, "POST", "/assets/revalue?dryRun=true", "")

		if rec.Code != http.StatusOK || !gotDry {
			t.Fatalf("expected dry run, got %d (dry=%v)", rec.Code, gotDry)
		}
	})

	t.Run("state", func(t *testing.T) {
		r := setupAssetRouter(NewAssetHandler(&mockAssetService{}, &mockAuditService{}, 5))

		rec := doRequest(r, "GET", "/guest/assets/state", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ns := parseJSON(t, rec)["namespace"]; ns != "personal_assets_guest" {
			t.Errorf("expected guest namespace, got %v", ns)
		}
	})
}
