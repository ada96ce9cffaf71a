package twin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/auth"
)

// Handler exposes the timeline and snapshot read paths plus manual event entry.
type Handler struct {
	svc  *Service
	snap *SnapshotBuilder
}

func NewHandler(svc *Service, snap *SnapshotBuilder) *Handler {
	return &Handler{svc: svc, snap: snap}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/twin/:patient_id/events", h.RecordEvent)
	api.GET("/twin/:patient_id/timeline", h.Timeline)
	api.GET("/twin/:patient_id/summary", h.Summary)
}

type recordEventRequest struct {
	EventType    EventType       `json:"event_type"`
	SourceModule SourceModule    `json:"source_module"`
	Data         json.RawMessage `json:"data"`
	Confidence   *float64        `json:"clinical_confidence"`
	AccessScope  []string        `json:"access_scope"`
}

// RecordEvent appends one event supplied directly by a caller. Entries made
// this way carry the manual source unless the caller names another subsystem.
func (h *Handler) RecordEvent(c echo.Context) error {
	var req recordEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.SourceModule == "" {
		req.SourceModule = SourceManual
	}
	if len(req.Data) == 0 {
		req.Data = json.RawMessage(`{}`)
	}

	payload, err := DecodePayload(req.EventType, req.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	e, err := h.svc.Record(c.Request().Context(), c.Param("patient_id"),
		req.SourceModule, payload, req.Confidence, req.AccessScope)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

// Timeline returns the caller-visible slice of the patient's event log,
// newest first.
func (h *Handler) Timeline(c echo.Context) error {
	ctx := c.Request().Context()

	var f Filter
	f.EventType = EventType(c.QueryParam("event_type"))
	f.SourceModule = SourceModule(c.QueryParam("source_module"))
	if s := c.QueryParam("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		f.Start = &t
	}
	if s := c.QueryParam("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		f.End = &t
	}
	if s := c.QueryParam("limit"); s != "" {
		f.Limit, _ = strconv.Atoi(s)
	}

	scopes := auth.ScopesFromContext(ctx)
	if auth.Unrestricted(ctx) {
		scopes = nil
	}

	events, err := h.svc.Timeline(ctx, c.Param("patient_id"), scopes, f)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patient_id": c.Param("patient_id"),
		"events":     events,
		"count":      len(events),
	})
}

// Summary returns the derived current-state snapshot for the patient.
func (h *Handler) Summary(c echo.Context) error {
	snap, err := h.snap.Build(c.Request().Context(), c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}
