package chart

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/db"
	"github.com/clinicrecords/clinic/internal/platform/web"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients/:id", h.GetChart)
}

func (h *Handler) GetChart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	ch, err := h.svc.GetChart(c.Request().Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{
		"patient":      ch.Patient,
		"appointments": ch.Appointments,
		"lab_results":  ch.LabResults,
		"bills":        ch.Bills,
	})
}
