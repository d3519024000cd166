package diagnostics

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/web"
)

const NoticeLabResultRecorded = "Lab result recorded!"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/lab-results", h.ListLabResults)
	g.GET("/lab-results/add", h.LabResultForm)
	g.POST("/lab-results/add", h.AddLabResult)
}

func (h *Handler) ListLabResults(c echo.Context) error {
	items, err := h.svc.ListLabResults(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"lab_results": items})
}

func (h *Handler) LabResultForm(c echo.Context) error {
	patients, err := h.svc.FormChoices(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"patients": patients, "statuses": ResultStatuses})
}

func (h *Handler) AddLabResult(c echo.Context) error {
	f, err := web.ParseForm(c)
	if err != nil {
		return err
	}
	rawPatient, err := f.Required("patient_id")
	if err != nil {
		return err
	}
	testName, err := f.Required("test_name")
	if err != nil {
		return err
	}

	r := &LabResult{
		TestName:    testName,
		ResultValue: web.Text(f.Optional("result_value")),
		Notes:       web.Text(f.Optional("notes")),
	}
	if r.PatientID, err = web.ParseID("patient_id", rawPatient); err != nil {
		return err
	}
	if r.TestDate, err = web.ParseDate("test_date", f.Optional("test_date")); err != nil {
		return err
	}
	rawStatus := f.Optional("status")
	if r.Status, err = ParseResultStatus(rawStatus); err != nil {
		return &web.FormatError{Field: "status", Value: rawStatus, Cause: err}
	}

	if err := h.svc.RecordLabResult(c.Request().Context(), r); err != nil {
		return err
	}
	return web.RedirectWithNotice(c, "/lab-results", NoticeLabResultRecorded)
}
