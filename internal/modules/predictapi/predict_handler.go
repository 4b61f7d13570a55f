// Package predictapi exposes the risk predictor as a standalone endpoint so
// users can check conditions before submitting an SOS alert.
package predictapi

import (
	"net/http"

	"disaster-response/internal/predict"
	"disaster-response/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for risk prediction.
type Handler struct {
	predictor predict.Predictor
}

// NewHandler creates a new prediction handler.
func NewHandler(predictor predict.Predictor) *Handler {
	return &Handler{predictor: predictor}
}

// PredictRisk handles POST /predict.
func (h *Handler) PredictRisk(c echo.Context) error {
	var sample predict.Sample
	if err := c.Bind(&sample); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(sample); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	risk, err := h.predictor.Predict(sample)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Prediction failed")
	}
	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"risk_level": risk})
}
