package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"assetvault/internal/config"
	"assetvault/internal/database"
	"assetvault/internal/handlers"
	"assetvault/internal/identity"
	"assetvault/internal/logger"
	"assetvault/internal/middleware"
	"assetvault/internal/services"
	"assetvault/internal/storage"
	"assetvault/internal/validator"
)

const (
	baseKey        = "personal_assets"
	maintenanceKey = "test-maintenance-key"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	KV     storage.KV
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
	config.Set(&config.Config{
		JWTSecret:        "integration-secret",
		JWTExpirationDur: time.Hour,
	})
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(database.Models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database that holds both users and asset slots.
func setupApp(t *testing.T, seed bool) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	kv := storage.NewGormKV(db)
	binder := identity.NewBinder(kv, baseKey, seed)

	// Services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(userService, middleware.GenerateAccessToken)
	assetService := services.NewAssetService(binder)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessionService, userService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService, 5)
	categoryHandler := handlers.NewCategoryHandler()
	maintenanceHandler := handlers.NewMaintenanceHandler(assetService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/categories", categoryHandler.ListCategories)
	v1.GET("/categories/:id", categoryHandler.GetCategory)
	v1.GET("/conditions", categoryHandler.ListConditions)

	handlers.RegisterAssetRoutes(v1.Group("/guest"), assetHandler)

	maintenance := v1.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuthMiddleware(maintenanceKey))
	maintenance.POST("/revalue", maintenanceHandler.Revalue)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(sessionService))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)
	protected.GET("/profile/activity", authHandler.GetActivity)
	handlers.RegisterAssetRoutes(protected, assetHandler)

	return &testApp{DB: db, KV: kv, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, email, password string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// createAsset posts an asset and returns the created asset object.
func (app *testApp) createAsset(t *testing.T, token, body string) map[string]interface{} {
	t.Helper()
	path := "/api/v1/assets"
	if token == "" {
		path = "/api/v1/guest/assets"
	}
	rec := app.request("POST", path, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create asset failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["asset"].(map[string]interface{})
}

// listAssets returns every asset visible with token, in default order.
func (app *testApp) listAssets(t *testing.T, token, query string) []interface{} {
	t.Helper()
	path := "/api/v1/assets"
	if token == "" {
		path = "/api/v1/guest/assets"
	}
	rec := app.request("GET", path+query, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list assets failed: %d %s", rec.Code, rec.Body.String())
	}
	page := parseJSON(t, rec)["assets"].(map[string]interface{})
	return page["data"].([]interface{})
}

// requestWithAPIKey makes an HTTP request carrying a maintenance API key.
func (app *testApp) requestWithAPIKey(method, path, body, apiKey string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", apiKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}
