package scheduling

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/db"
	"github.com/clinicrecords/clinic/internal/platform/web"
)

const NoticeAppointmentScheduled = "Appointment scheduled!"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/add", h.AppointmentForm)
	g.POST("/appointments/add", h.AddAppointment)
	g.GET("/appointments/:id", h.GetAppointment)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	items, err := h.svc.ListAppointments(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"appointments": items})
}

func (h *Handler) AppointmentForm(c echo.Context) error {
	patients, doctors, err := h.svc.FormChoices(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"patients": patients, "doctors": doctors})
}

func (h *Handler) AddAppointment(c echo.Context) error {
	f, err := web.ParseForm(c)
	if err != nil {
		return err
	}

	var v [4]string
	for i, field := range []string{"patient_id", "doctor_id", "date_time", "reason"} {
		if v[i], err = f.Required(field); err != nil {
			return err
		}
	}

	a := &Appointment{Status: StatusScheduled, Reason: web.Text(v[3])}
	if a.PatientID, err = web.ParseID("patient_id", v[0]); err != nil {
		return err
	}
	if a.DoctorID, err = web.ParseID("doctor_id", v[1]); err != nil {
		return err
	}
	if a.DateTime, err = web.ParseDateTime("date_time", v[2]); err != nil {
		return err
	}

	if err := h.svc.CreateAppointment(c.Request().Context(), a); err != nil {
		return err
	}
	return web.RedirectWithNotice(c, "/appointments", NoticeAppointmentScheduled)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	detail, err := h.svc.GetAppointmentDetail(c.Request().Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{
		"appointment": detail.Appointment,
		"patient":     detail.Patient,
		"doctor":      detail.Doctor,
	})
}
