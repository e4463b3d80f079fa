package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "assetvault/internal/errors"
	"assetvault/internal/models"
	"assetvault/internal/services"
)

// AuthHandler handles authentication and profile requests.
type AuthHandler struct {
	sessionService services.SessionServicer
	userService    services.UserServicer
	auditService   services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessionService services.SessionServicer, userService services.UserServicer, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{sessionService: sessionService, userService: userService, auditService: auditService}
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"max=100"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the profile update payload. Empty fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Email string `json:"email" binding:"omitempty,email,max=255"`
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
}

// UserResponse represents the user data in the response
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthResponse represents the authentication response with token
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func userBody(user *models.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

// respondWithResult writes a failed session Result as an error response.
func respondWithResult(c *gin.Context, res services.Result) {
	sentinel := apperrors.ErrInternalServer
	for _, known := range []*apperrors.AppError{
		apperrors.ErrUnauthorized,
		apperrors.ErrInvalidCredentials,
		apperrors.ErrInvalidInput,
		apperrors.ErrUserNotFound,
		apperrors.ErrDuplicateEmail,
	} {
		if known.Code == res.Code {
			sentinel = known
			break
		}
	}
	respondWithError(c, apperrors.WithMessage(sentinel, res.Error))
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res := h.sessionService.Register(req.Email, req.Password, req.Name)
	if !res.Success {
		respondWithResult(c, res)
		return
	}

	h.auditService.Log(services.AuditEntry{
		UserID:       res.User.ID,
		Action:       "REGISTER",
		ResourceType: "user",
		ResourceID:   res.User.ID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusCreated, gin.H{
		"token": res.Token,
		"user":  userBody(res.User),
	})
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get a token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and token generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res := h.sessionService.Login(req.Email, req.Password)
	if !res.Success {
		respondWithResult(c, res)
		return
	}

	h.auditService.Log(services.AuditEntry{
		UserID:       res.User.ID,
		Action:       "LOGIN",
		ResourceType: "user",
		ResourceID:   res.User.ID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"token": res.Token,
		"user":  userBody(res.User),
	})
}

// Logout revokes the current token. The user's assets are kept.
// @Summary     Logout user
// @Description Revoke the bearer token used for this request
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string "Logged out"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tokenID, expiresAt := tokenFromContext(c)
	res := h.sessionService.Logout(tokenID, expiresAt)
	if !res.Success {
		respondWithResult(c, res)
		return
	}

	h.auditService.Log(services.AuditEntry{
		UserID:       userID,
		Action:       "LOGOUT",
		ResourceType: "user",
		ResourceID:   userID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile returns the user's profile
// @Summary     Get user profile
// @Description Get the authenticated user's profile information
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "User profile"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userBody(user)})
}

// UpdateProfile changes the user's name or email
// @Summary     Update user profile
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateProfileRequest true "Profile fields"
// @Success     200 {object} UserResponse "Updated profile"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Email already registered"
// @Router      /profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res := h.sessionService.UpdateProfile(userID, req.Name, req.Email)
	if !res.Success {
		respondWithResult(c, res)
		return
	}

	h.auditService.Log(services.AuditEntry{
		UserID:       userID,
		Action:       "UPDATE_PROFILE",
		ResourceType: "user",
		ResourceID:   userID,
		IPAddress:    c.ClientIP(),
		Changes:      map[string]any{"name": req.Name, "email": req.Email},
	})

	c.JSON(http.StatusOK, gin.H{"user": userBody(res.User)})
}

// ChangePassword replaces the user's password
// @Summary     Change password
// @Tags        user
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChangePasswordRequest true "Current and new password"
// @Success     200 {object} map[string]string "Password changed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Wrong current password"
// @Router      /profile/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	res := h.sessionService.ChangePassword(userID, req.CurrentPassword, req.NewPassword)
	if !res.Success {
		respondWithResult(c, res)
		return
	}

	h.auditService.Log(services.AuditEntry{
		UserID:       userID,
		Action:       "CHANGE_PASSWORD",
		ResourceType: "user",
		ResourceID:   userID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// GetActivity returns the user's recent audited actions
// @Summary     Recent account activity
// @Tags        user
// @Produce     json
// @Security    BearerAuth
// @Param       limit query int false "Maximum entries (default 50)"
// @Success     200 {object} map[string]interface{} "Activity entries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /profile/activity [get]
func (h *AuthHandler) GetActivity(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q struct {
		Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entries, err := h.auditService.Recent(userID, q.Limit)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
