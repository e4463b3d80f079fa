package services

import (
	"context"
	"time"

	"assetvault/internal/identity"
	"assetvault/internal/models"
	"assetvault/internal/portfolio"
	"assetvault/internal/revaluer"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	RecordLogin(user *models.User) error
	UpdateProfile(userID, name, email string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
}

// Result is the outcome of a session operation. Error carries a
// human-readable message when Success is false.
type Result struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	Code    string       `json:"code,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// SessionServicer is the identity collaborator: it authenticates users and
// issues and revokes access tokens. Logging out never touches a user's
// persisted assets.
type SessionServicer interface {
	Register(email, password, name string) Result
	Login(email, password string) Result
	Logout(tokenID string, expiresAt time.Time) Result
	UpdateProfile(userID, name, email string) Result
	ChangePassword(userID, currentPassword, newPassword string) Result
	IsRevoked(tokenID string) bool
}

// AssetSnapshot is the read-mostly view of a namespace.
type AssetSnapshot struct {
	Namespace string         `json:"namespace"`
	Assets    []models.Asset `json:"assets"`
	Loading   bool           `json:"loading"`
	Error     error          `json:"-"`
}

// AssetServicer resolves an identity to its namespace's store and exposes
// the asset operations on it. Mutations on unknown ids are silent no-ops
// reported through the returned bool.
type AssetServicer interface {
	Snapshot(ident *identity.Identity) (*AssetSnapshot, error)
	ListAssets(ident *identity.Identity, criteria portfolio.Criteria) ([]models.Asset, error)
	GetAsset(ident *identity.Identity, assetID string) (*models.Asset, error)
	AddAsset(ident *identity.Identity, draft models.AssetDraft) (*models.Asset, error)
	UpdateAsset(ident *identity.Identity, assetID string, patch models.AssetPatch) (*models.Asset, bool, error)
	DeleteAsset(ident *identity.Identity, assetID string) (bool, error)
	ToggleFavorite(ident *identity.Identity, assetID string) (*models.Asset, bool, error)
	UpdateAssetValue(ident *identity.Identity, assetID string, value float64) (*models.Asset, bool, error)
	AddPhotos(ident *identity.Identity, assetID string, photos []models.Photo) (*models.Asset, bool, error)
	RemovePhoto(ident *identity.Identity, assetID, photoID string) (*models.Asset, bool, error)
	Summary(ident *identity.Identity) (*portfolio.Summary, error)
	RecentAssets(ident *identity.Identity, n int) ([]models.Asset, error)
	CategoryStats(ident *identity.Identity) ([]portfolio.CategoryStat, error)
	FavoritesStats(ident *identity.Identity) (*portfolio.FavoritesSummary, error)
	Revalue(ctx context.Context, ident *identity.Identity, dryRun bool) (*revaluer.RunResult, error)
	StoreError(ident *identity.Identity) error
	ClearError(ident *identity.Identity) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(entry AuditEntry)
	Recent(userID string, limit int) ([]models.AuditLog, error)
}
