package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"gold-ledger/internal/pagination"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware
const (
	AdminIDContextKey     = "admin_id"
	AdminEmailContextKey  = "admin_email"
	AccessTokenContextKey = "access_token"
)

// ErrUnauthorized is returned when the admin context is missing or invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

func getAdminIDFromContext(c echo.Context) (uuid.UUID, error) {
	adminID, ok := c.Get(AdminIDContextKey).(uuid.UUID)
	if !ok || adminID == uuid.Nil {
		return uuid.UUID{}, ErrUnauthorized
	}
	return adminID, nil
}

func getIntParam(c echo.Context, name string, defaultValue int) (int, error) {
	param := strings.TrimSpace(c.QueryParam(name))
	if param == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(param)
}

// parsePageRequest reads zero-based page and size query parameters.
// The size is clamped to pagination.MaxPageSize; a negative page or one whose
// offset cannot be addressed is rejected.
func parsePageRequest(c echo.Context) (pagination.PageRequest, error) {
	page, err := getIntParam(c, "page", 0)
	if err != nil {
		return pagination.PageRequest{}, fmt.Errorf("page must be an integer")
	}
	if page < 0 {
		return pagination.PageRequest{}, pagination.ErrNegativePage
	}

	size, err := getIntParam(c, "size", pagination.DefaultPageSize)
	if err != nil {
		return pagination.PageRequest{}, fmt.Errorf("size must be an integer")
	}

	req := pagination.PageRequest{Page: page, Size: pagination.Clamp(size)}
	if err := req.Validate(); err != nil {
		return pagination.PageRequest{}, err
	}
	return req, nil
}
