package healthsync

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler provides HTTP handlers for device sync.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient_id/devices", h.ConnectDevice)
	api.GET("/patients/:patient_id/devices", h.ListDevices)
	api.POST("/devices/:id/sync", h.SyncBatch)
	api.GET("/patients/:patient_id/health-summary", h.Summary)
}

func (h *Handler) ConnectDevice(c echo.Context) error {
	var d Device
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.PatientID = c.Param("patient_id")
	if err := h.svc.Connect(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) ListDevices(c echo.Context) error {
	devices, err := h.svc.ListDevices(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, devices)
}

type syncRequest struct {
	Samples []Sample `json:"samples"`
}

func (h *Handler) SyncBatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req syncRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.SyncBatch(c.Request().Context(), id, req.Samples)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Summary(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	sum, err := h.svc.Summarize(c.Request().Context(), c.Param("patient_id"), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, sum)
}
