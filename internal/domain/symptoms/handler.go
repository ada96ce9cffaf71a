package symptoms

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides HTTP handlers for the symptom checker.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient_id/symptoms/analyze", h.Analyze)
	api.GET("/patients/:patient_id/symptoms/history", h.History)
}

type analyzeRequest struct {
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes"`
}

func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	analysis, err := h.svc.Analyze(c.Request().Context(), c.Param("patient_id"), req.Symptoms, req.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *Handler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	events, err := h.svc.History(c.Request().Context(), c.Param("patient_id"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patient_id": c.Param("patient_id"),
		"sessions":   events,
		"count":      len(events),
	})
}
