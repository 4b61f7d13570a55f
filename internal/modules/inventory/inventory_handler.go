package inventory

import (
	"net/http"
	"strconv"

	"disaster-response/internal/models"
	"disaster-response/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the inventory ledger.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new inventory handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// AddResource handles POST /admin/resources.
func (h *Handler) AddResource(c echo.Context) error {
	var req models.AddResourceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	item, err := h.svc.Add(c.Request().Context(), req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, item)
}

// UpdateResource handles PUT /admin/resources/:resourceId.
func (h *Handler) UpdateResource(c echo.Context) error {
	resourceID, err := strconv.ParseInt(c.Param("resourceId"), 10, 64)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid resource ID")
	}

	var req models.UpdateResourceRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	item, err := h.svc.Update(c.Request().Context(), resourceID, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, item)
}

// ListResources handles GET /resources.
func (h *Handler) ListResources(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load resources")
	}
	return utils.RespondWithJSON(c, http.StatusOK, items)
}

// ListInStock handles GET /volunteer/resources.
func (h *Handler) ListInStock(c echo.Context) error {
	items, err := h.svc.ListInStock(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load resources")
	}
	return utils.RespondWithJSON(c, http.StatusOK, items)
}
