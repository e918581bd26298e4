package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"gold-ledger/internal/dto"
	"gold-ledger/internal/errors"
	"gold-ledger/internal/services"

	"github.com/labstack/echo/v4"
)

// CookieSettings controls the session cookie written on login
type CookieSettings struct {
	Name   string
	Secure bool
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
	cookie      CookieSettings
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "access_token"
	}
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

var passwordPolicyErrors = []error{
	services.ErrPasswordEmpty,
	services.ErrPasswordTooShort,
	services.ErrPasswordTooLong,
	services.ErrPasswordNoLetter,
	services.ErrPasswordNoNumber,
}

func isPasswordPolicyError(err error) bool {
	for _, target := range passwordPolicyErrors {
		if stderrors.Is(err, target) {
			return true
		}
	}
	return false
}

// Register handles admin registration
// @Summary Register a new admin
// @Description Create an admin account and start a session
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} SuccessResponse{data=dto.AuthResponse} "Admin registered"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "Admin already exists - AUTH_006"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAdminAlreadyExists):
			return SendError(c, errors.AuthAdminAlreadyExists)
		case isPasswordPolicyError(err):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	h.setSessionCookie(c, resp.AccessToken, resp.ExpiresAt)
	resp.AccessToken = h.bodyToken(c, resp.AccessToken)

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    resp,
		Message: "Admin registered successfully",
	})
}

// Login handles admin authentication
// @Summary Login admin
// @Description Authenticate with email and password; the session token is set as an HttpOnly cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Param bearer query bool false "Also return the token in the body"
// @Success 200 {object} SuccessResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials - AUTH_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	h.setSessionCookie(c, resp.AccessToken, resp.ExpiresAt)
	resp.AccessToken = h.bodyToken(c, resp.AccessToken)

	return c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// Logout revokes the current session
// @Summary Logout admin
// @Description Blacklist the current token and clear the session cookie
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse "Logged out"
// @Failure 401 {object} errors.ErrorResponse "Missing or invalid token - AUTH_002 / AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, ok := c.Get(AccessTokenContextKey).(string)
	if !ok || token == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	if err := h.authService.Logout(token); err != nil {
		return SendSystemError(c, err)
	}

	h.clearSessionCookie(c)

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out successfully"})
}

// Me returns the logged-in admin
// @Summary Current admin
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse{data=models.AdminProfile} "Current admin"
// @Failure 401 {object} errors.ErrorResponse "Not logged in - AUTH_002"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	adminID, err := getAdminIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	profile, err := h.authService.Profile(adminID)
	if err != nil {
		if stderrors.Is(err, services.ErrAdminNotFound) {
			return SendError(c, errors.AuthInvalidCredentials, errors.WithDetails("Admin no longer exists"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: profile})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// bodyToken keeps the token out of the JSON body unless a bearer client asks for it
func (h *AuthHandler) bodyToken(c echo.Context, token string) string {
	if c.QueryParam("bearer") == "true" {
		return token
	}
	return ""
}
