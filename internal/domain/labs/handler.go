package labs

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spaik6556-ops/MediNexus-Pro/pkg/pagination"
)

// Handler provides HTTP handlers for the labs domain.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient_id/labs", h.CreateResult)
	api.GET("/patients/:patient_id/labs", h.ListResults)
	api.GET("/patients/:patient_id/labs/trends", h.Trend)
}

func (h *Handler) CreateResult(c echo.Context) error {
	var l LabResult
	if err := c.Bind(&l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l.PatientID = c.Param("patient_id")
	if err := h.svc.Create(c.Request().Context(), &l); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *Handler) ListResults(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.Param("patient_id"),
		c.QueryParam("test_name"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Trend(c echo.Context) error {
	testName := c.QueryParam("test_name")
	if testName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "test_name is required")
	}
	points, err := h.svc.Trend(c.Request().Context(), c.Param("patient_id"), testName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"test_name": testName,
		"points":    points,
	})
}
