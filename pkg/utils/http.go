package utils

import (
	"errors"
	"net/http"

	"disaster-response/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a JSON error body with the given status code.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps service-layer errors onto HTTP responses. Sentinel
// errors carry their descriptive message through; anything unrecognized is
// treated as an infrastructure failure and hidden behind a generic message.
func HandleServiceError(c echo.Context, err error) error {
	var stockErr *models.InsufficientStockError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrValidation):
		return RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		return RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, err.Error())
	case errors.As(err, &stockErr):
		return RespondWithError(c, http.StatusConflict, stockErr.Error())
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

// ExtractUserInfo reads the authenticated caller's identity placed into the
// context by the JWT middleware.
func ExtractUserInfo(c echo.Context) (userID, username, role string, err error) {
	userID, _ = c.Get("userID").(string)
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if userID == "" || role == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return userID, username, role, nil
}
