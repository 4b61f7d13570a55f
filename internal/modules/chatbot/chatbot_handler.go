package chatbot

import (
	"net/http"

	"disaster-response/internal/models"
	"disaster-response/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for the assistant.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new chatbot handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Chat handles POST /chatbot.
func (h *Handler) Chat(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	entry, err := h.svc.Chat(c.Request().Context(), userID, req.Message)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, entry)
}

// History handles GET /chatbot.
func (h *Handler) History(c echo.Context) error {
	userID, _, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	messages, err := h.svc.History(c.Request().Context(), userID)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load chat history")
	}
	return utils.RespondWithJSON(c, http.StatusOK, messages)
}
