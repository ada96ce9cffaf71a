package insights

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Handler provides HTTP handlers for the insights domain.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:patient_id/insights/daily", h.Daily)
	api.GET("/patients/:patient_id/insights/risks", h.Risks)
	api.GET("/patients/:patient_id/insights/recommendations", h.Recommendations)
	api.GET("/patients/:patient_id/insights/weekly", h.Weekly)
}

func (h *Handler) Daily(c echo.Context) error {
	ds, err := h.svc.Daily(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ds)
}

func (h *Handler) Risks(c echo.Context) error {
	var p Profile
	if v := c.QueryParam("age"); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			p.Age = age
		}
	}
	p.Smoker = c.QueryParam("smoker") == "true"
	p.FamilyHeartDisease = c.QueryParam("family_heart_disease") == "true"
	p.FamilyDiabetes = c.QueryParam("family_diabetes") == "true"

	risks, err := h.svc.Risks(c.Request().Context(), c.Param("patient_id"), p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, risks)
}

func (h *Handler) Recommendations(c echo.Context) error {
	recs, err := h.svc.Recommendations(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, recs)
}

func (h *Handler) Weekly(c echo.Context) error {
	report, err := h.svc.Weekly(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
