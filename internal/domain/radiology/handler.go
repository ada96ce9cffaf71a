package radiology

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spaik6556-ops/MediNexus-Pro/pkg/pagination"
)

// Handler provides HTTP handlers for the radiology domain.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/:patient_id/radiology/analyze", h.Analyze)
	api.GET("/patients/:patient_id/radiology", h.ListAnalyses)
}

type analyzeRequest struct {
	Modality         string `json:"modality"`
	BodyPart         string `json:"body_part"`
	ClinicalContext  string `json:"clinical_context"`
	StudyDescription string `json:"study_description"`
}

func (h *Handler) Analyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := &Analysis{
		PatientID:       c.Param("patient_id"),
		Modality:        req.Modality,
		BodyPart:        req.BodyPart,
		ClinicalContext: req.ClinicalContext,
	}
	if err := h.svc.Analyze(c.Request().Context(), a, req.StudyDescription); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAnalyses(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), c.Param("patient_id"), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
