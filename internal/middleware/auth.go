package middleware

import (
	stderrors "errors"
	"strings"

	"gold-ledger/internal/errors"
	"gold-ledger/internal/handlers"
	"gold-ledger/internal/repositories"
	"gold-ledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT, read from the session
// cookie or a bearer Authorization header, that has not been revoked by logout
func RequireAuth(tokenService services.TokenServiceInterface, blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, code := extractToken(c, tokenService, cookieName)
			if code != "" {
				return handlers.SendError(c, code)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if stderrors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			revoked, err := blacklistedTokenRepo.GetByJTI(claims.ID)
			if err == nil && revoked != nil {
				return handlers.SendError(c, errors.AuthRevokedToken)
			}
			if err != nil && !stderrors.Is(err, repositories.ErrTokenNotFound) {
				return handlers.SendSystemError(c, err)
			}

			adminID, err := uuid.Parse(claims.AdminID)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat, errors.WithDetails("Invalid admin ID in token"))
			}

			c.Set(handlers.AdminIDContextKey, adminID)
			c.Set(handlers.AdminEmailContextKey, claims.Email)
			c.Set(handlers.AccessTokenContextKey, token)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}

// extractToken prefers the cookie; a bearer header serves non-browser clients
func extractToken(c echo.Context, tokenService services.TokenServiceInterface, cookieName string) (string, errors.ErrorCode) {
	if cookie, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(cookie.Value) != "" {
		return strings.TrimSpace(cookie.Value), ""
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.AuthMissingToken
	}

	token, err := tokenService.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return "", errors.AuthInvalidTokenFormat
	}
	return token, ""
}
