package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/logger"
	"assetvault/internal/middleware"
	"assetvault/internal/models"
	"assetvault/internal/services"
	"assetvault/internal/validator"
)

// --- mock services ---

type mockSessionService struct {
	registerFn       func(email, password, name string) services.Result
	loginFn          func(email, password string) services.Result
	logoutFn         func(tokenID string, expiresAt time.Time) services.Result
	updateProfileFn  func(userID, name, email string) services.Result
	changePasswordFn func(userID, currentPassword, newPassword string) services.Result
}

func (m *mockSessionService) Register(email, password, name string) services.Result {
	if m.registerFn != nil {
		return m.registerFn(email, password, name)
	}
	return services.Result{Success: true, User: &models.User{}}
}

func (m *mockSessionService) Login(email, password string) services.Result {
	if m.loginFn != nil {
		return m.loginFn(email, password)
	}
	return services.Result{Success: true, User: &models.User{}}
}

func (m *mockSessionService) Logout(tokenID string, expiresAt time.Time) services.Result {
	if m.logoutFn != nil {
		return m.logoutFn(tokenID, expiresAt)
	}
	return services.Result{Success: true}
}

func (m *mockSessionService) UpdateProfile(userID, name, email string) services.Result {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(userID, name, email)
	}
	return services.Result{Success: true, User: &models.User{}}
}

func (m *mockSessionService) ChangePassword(userID, currentPassword, newPassword string) services.Result {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, currentPassword, newPassword)
	}
	return services.Result{Success: true}
}

func (m *mockSessionService) IsRevoked(string) bool { return false }

var _ services.SessionServicer = (*mockSessionService)(nil)

type mockUserService struct {
	getUserByIDFn func(id string) (*models.User, error)
}

func (m *mockUserService) CreateUser(email, _, name string) (*models.User, error) {
	return &models.User{Email: email, Name: name}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	return &models.User{Email: email}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(*models.User, string) bool { return true }

func (m *mockUserService) RecordLogin(*models.User) error { return nil }

func (m *mockUserService) UpdateProfile(userID, name, email string) (*models.User, error) {
	return &models.User{Base: models.Base{ID: userID}, Name: name, Email: email}, nil
}

func (m *mockUserService) ChangePassword(string, string, string) error { return nil }

var _ services.UserServicer = (*mockUserService)(nil)

type mockAuditService struct {
	entries  []services.AuditEntry
	recentFn func(userID string, limit int) ([]models.AuditLog, error)
}

func (m *mockAuditService) Log(e services.AuditEntry) {
	m.entries = append(m.entries, e)
}

func (m *mockAuditService) Recent(userID string, limit int) ([]models.AuditLog, error) {
	if m.recentFn != nil {
		return m.recentFn(userID, limit)
	}
	return []models.AuditLog{}, nil
}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", handler.Register)
	r.POST("/auth/login", handler.Login)
	auth := r.Group("", injectUserID("user-1"))
	auth.POST("/auth/logout", handler.Logout)
	auth.GET("/profile", handler.GetProfile)
	auth.PUT("/profile", handler.UpdateProfile)
	auth.PUT("/profile/password", handler.ChangePassword)
	auth.GET("/profile/activity", handler.GetActivity)
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, uid)
		c.Set(middleware.EmailKey, uid+"@test.com")
		c.Set(middleware.TokenIDKey, "jti-"+uid)
		c.Set(middleware.TokenExpiresAtKey, time.Now().Add(time.Hour))
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func failed(err *apperrors.AppError) services.Result {
	return services.Result{Error: err.Message, Code: err.Code}
}

// --- tests ---

func TestAuthHandler_Register(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		sessions := &mockSessionService{
			registerFn: func(email, _, name string) services.Result {
				return services.Result{
					Success: true,
					Token:   "tok",
					User:    &models.User{Base: models.Base{ID: "user-9"}, Email: email, Name: name},
				}
			},
		}
		audit := &mockAuditService{}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, audit))

		rec := doRequest(r, "POST", "/auth/register",
			`{"email":"new@example.com","password":"password123","name":"New"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["token"] != "tok" {
			t.Errorf("expected token, got %v", result["token"])
		}
		user := result["user"].(map[string]interface{})
		if user["email"] != "new@example.com" || user["name"] != "New" {
			t.Errorf("unexpected user: %v", user)
		}
		if len(audit.entries) != 1 || audit.entries[0].Action != "REGISTER" {
			t.Errorf("expected REGISTER audit entry, got %+v", audit.entries)
		}
	})

	t.Run("returns 400 on short password", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@example.com","password":"short"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 409 on duplicate email", func(t *testing.T) {
		sessions := &mockSessionService{
			registerFn: func(string, string, string) services.Result { return failed(apperrors.ErrDuplicateEmail) },
		}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/register", `{"email":"a@example.com","password":"password123"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_EMAIL")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns 200 with token", func(t *testing.T) {
		sessions := &mockSessionService{
			loginFn: func(email, _ string) services.Result {
				return services.Result{Success: true, Token: "tok", User: &models.User{Base: models.Base{ID: "u"}, Email: email}}
			},
		}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@example.com","password":"password123"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["token"] != "tok" {
			t.Error("expected token in response")
		}
	})

	t.Run("returns 401 on bad credentials", func(t *testing.T) {
		sessions := &mockSessionService{
			loginFn: func(string, string) services.Result { return failed(apperrors.ErrInvalidCredentials) },
		}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"a@example.com","password":"nope"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 on malformed email", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/auth/login", `{"email":"nope","password":"x"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	var gotTokenID string
	sessions := &mockSessionService{
		logoutFn: func(tokenID string, _ time.Time) services.Result {
			gotTokenID = tokenID
			return services.Result{Success: true}
		},
	}
	r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

	rec := doRequest(r, "POST", "/auth/logout", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotTokenID != "jti-user-1" {
		t.Errorf("expected token id from context, got %q", gotTokenID)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	t.Run("get returns user", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["id"] != "user-1" {
			t.Errorf("expected user-1, got %v", user["id"])
		}
	})

	t.Run("get returns 404 for deleted user", func(t *testing.T) {
		users := &mockUserService{
			getUserByIDFn: func(string) (*models.User, error) { return nil, apperrors.ErrUserNotFound },
		}
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, users, &mockAuditService{}))

		rec := doRequest(r, "GET", "/profile", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("update passes fields through", func(t *testing.T) {
		sessions := &mockSessionService{
			updateProfileFn: func(userID, name, email string) services.Result {
				return services.Result{Success: true, User: &models.User{Base: models.Base{ID: userID}, Name: name, Email: email}}
			},
		}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile", `{"name":"Renamed","email":"new@example.com"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		user := parseJSON(t, rec)["user"].(map[string]interface{})
		if user["name"] != "Renamed" || user["email"] != "new@example.com" {
			t.Errorf("unexpected user: %v", user)
		}
	})

	t.Run("change password with wrong current password", func(t *testing.T) {
		sessions := &mockSessionService{
			changePasswordFn: func(string, string, string) services.Result { return failed(apperrors.ErrInvalidCredentials) },
		}
		r := setupAuthRouter(NewAuthHandler(sessions, &mockUserService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/profile/password", `{"current_password":"x","new_password":"newpassword1"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("activity lists audit entries", func(t *testing.T) {
		audit := &mockAuditService{
			recentFn: func(userID string, limit int) ([]models.AuditLog, error) {
				if limit != 10 {
					t.Errorf("expected limit 10, got %d", limit)
				}
				return []models.AuditLog{{UserID: userID, Action: "LOGIN"}}, nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(&mockSessionService{}, &mockUserService{}, audit))

		rec := doRequest(r, "GET", "/profile/activity?limit=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		activity := parseJSON(t, rec)["activity"].([]interface{})
		if len(activity) != 1 {
			t.Errorf("expected 1 entry, got %d", len(activity))
		}
	})
}
