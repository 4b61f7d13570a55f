package sos

import (
	"net/http"
	"strconv"

	"disaster-response/internal/models"
	"disaster-response/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for SOS alerts.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new SOS handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// CreateSos handles POST /sos.
func (h *Handler) CreateSos(c echo.Context) error {
	userID, username, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateSosRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	sos, err := h.svc.Create(c.Request().Context(), userID, username, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusCreated, sos)
}

// ListMySos handles GET /sos.
func (h *Handler) ListMySos(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve SOS requests")
	}
	return utils.RespondWithJSON(c, http.StatusOK, requests)
}

// AssignSos handles POST /admin/sos/:sosId/assign.
func (h *Handler) AssignSos(c echo.Context) error {
	sosID, err := strconv.ParseInt(c.Param("sosId"), 10, 64)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid SOS ID")
	}

	var req models.AssignSosRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	sos, err := h.svc.Assign(c.Request().Context(), sosID, req.VolunteerName)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, sos)
}

// ResolveSos handles POST /volunteer/sos/:sosId/resolve.
func (h *Handler) ResolveSos(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	sosID, err := strconv.ParseInt(c.Param("sosId"), 10, 64)
	if err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid SOS ID")
	}

	sos, err := h.svc.Resolve(c.Request().Context(), sosID, userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, sos)
}

// ListAllSos handles GET /admin/sos, the admin live-map data source.
func (h *Handler) ListAllSos(c echo.Context) error {
	requests, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch map data")
	}
	return utils.RespondWithJSON(c, http.StatusOK, requests)
}

// ListVolunteerSos handles GET /volunteer/sos, the volunteer live-map data source.
func (h *Handler) ListVolunteerSos(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	requests, err := h.svc.ListForVolunteer(c.Request().Context(), userID)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch map data")
	}
	return utils.RespondWithJSON(c, http.StatusOK, requests)
}
