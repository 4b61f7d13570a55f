package delivery

import (
	"net/http"
	"strconv"

	"disaster-response/internal/models"
	"disaster-response/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for delivery requests.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new delivery handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// RequestDelivery handles POST /volunteer/deliveries.
func (h *Handler) RequestDelivery(c echo.Context) error {
	userID, username, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.RequestDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.Request(c.Request().Context(), userID, username, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, d)
}

// UpdateDelivery handles PUT /volunteer/deliveries/:deliveryId.
func (h *Handler) UpdateDelivery(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	deliveryID, err := strconv.ParseInt(c.Param("deliveryId"), 10, 64)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid delivery ID")
	}

	var req models.UpdateDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	d, err := h.svc.UpdateStatus(c.Request().Context(), deliveryID, userID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, d)
}

// ListMyDeliveries handles GET /volunteer/deliveries.
func (h *Handler) ListMyDeliveries(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	deliveries, err := h.svc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}
	return utils.RespondWithJSON(c, http.StatusOK, deliveries)
}

// ListPendingDeliveries handles GET /admin/deliveries.
func (h *Handler) ListPendingDeliveries(c echo.Context) error {
	deliveries, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}
	return utils.RespondWithJSON(c, http.StatusOK, deliveries)
}
