package billing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/db"
	"github.com/clinicrecords/clinic/internal/platform/web"
)

const NoticeBillCreated = "Bill created successfully!"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/bills", h.ListBills)
	g.GET("/bills/add", h.BillForm)
	g.POST("/bills/add", h.AddBill)
	g.GET("/bills/:id", h.GetBill)
}

func (h *Handler) ListBills(c echo.Context) error {
	items, err := h.svc.ListBills(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"bills": items})
}

func (h *Handler) BillForm(c echo.Context) error {
	patients, appts, err := h.svc.FormChoices(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{
		"patients":     patients,
		"appointments": appts,
		"statuses":     BillStatuses,
	})
}

// AddBill parses the whole submission, including every item amount, before
// anything is written.
func (h *Handler) AddBill(c echo.Context) error {
	f, err := web.ParseForm(c)
	if err != nil {
		return err
	}
	rawPatient, err := f.Required("patient_id")
	if err != nil {
		return err
	}
	rawTotal, err := f.Required("total_amount")
	if err != nil {
		return err
	}
	rawStatus, err := f.Required("status")
	if err != nil {
		return err
	}

	b := &Bill{}
	if b.PatientID, err = web.ParseID("patient_id", rawPatient); err != nil {
		return err
	}
	if b.AppointmentID, err = web.ParseOptionalID("appointment_id", f.Optional("appointment_id")); err != nil {
		return err
	}
	if b.TotalAmount, err = web.ParseAmount("total_amount", rawTotal); err != nil {
		return err
	}
	if b.Status, err = ParseBillStatus(rawStatus); err != nil {
		return &web.FormatError{Field: "status", Value: rawStatus, Cause: err}
	}

	items, err := PairItems(f.List("item_description"), f.List("item_amount"))
	if err != nil {
		return err
	}

	if err := h.svc.CreateBill(c.Request().Context(), b, items); err != nil {
		return err
	}
	return web.RedirectWithNotice(c, "/bills", NoticeBillCreated)
}

func (h *Handler) GetBill(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	detail, err := h.svc.GetBillDetail(c.Request().Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{
		"bill":    detail.Bill,
		"patient": detail.Patient,
		"items":   detail.Items,
	})
}
