package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gameshelf/auth"
	"gameshelf/config"
	"gameshelf/models"
)

type AuthHandler struct {
	Tokens *auth.TokenService
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Register creates a user with a bcrypt password hash and returns an access
// token for the new account.
func (h *AuthHandler) Register(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var existing models.User
	err = config.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Registration failed"})
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Password encryption failed"})
	}

	user := models.User{Email: req.Email, PasswordHash: hash}
	if err := config.DB.Create(&user).Error; err != nil {
		// Unique index race between the existence check and the insert.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Email already registered"})
	}

	token, err := h.Tokens.Issue(user.Email, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Token issue failed"})
	}

	return c.JSON(http.StatusCreated, tokenResponse{AccessToken: token})
}

// Login verifies email/password and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindCredentials(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Wrong email or password"})
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Wrong email or password"})
	}

	token, err := h.Tokens.Issue(user.Email, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Token issue failed"})
	}

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

// Me returns the authenticated user's email from the validated token.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"email": auth.Email(c)})
}

// bindCredentials binds and validates a register/login body before any
// database work happens.
func bindCredentials(c echo.Context) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, errors.New("Invalid request")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return req, errors.New("Valid email is required")
	}
	if req.Password == "" {
		return req, errors.New("Password is required")
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return req, auth.ErrPasswordTooLong
	}

	return req, nil
}
