package identity

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/web"
)

const (
	NoticePatientAdded = "Patient added successfully!"
	NoticeDoctorAdded  = "Doctor added successfully!"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/add", h.PatientForm)
	g.POST("/patients/add", h.AddPatient)

	g.GET("/doctors", h.ListDoctors)
	g.GET("/doctors/add", h.DoctorForm)
	g.POST("/doctors/add", h.AddDoctor)
}

// -- Patient Handlers --

func (h *Handler) ListPatients(c echo.Context) error {
	items, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"patients": items})
}

func (h *Handler) PatientForm(c echo.Context) error {
	return web.Page(c, echo.Map{"genders": Genders})
}

func (h *Handler) AddPatient(c echo.Context) error {
	p, err := patientFromForm(c)
	if err != nil {
		return err
	}
	if err := h.svc.CreatePatient(c.Request().Context(), p); err != nil {
		return err
	}
	return web.RedirectWithNotice(c, "/patients", NoticePatientAdded)
}

func patientFromForm(c echo.Context) (*Patient, error) {
	f, err := web.ParseForm(c)
	if err != nil {
		return nil, err
	}

	var v [6]string
	for i, field := range []string{"name", "dob", "gender", "phone", "address", "email"} {
		if v[i], err = f.Required(field); err != nil {
			return nil, err
		}
	}

	dob, err := web.ParseDate("dob", v[1])
	if err != nil {
		return nil, err
	}
	gender, err := ParseGender(v[2])
	if err != nil {
		return nil, &web.FormatError{Field: "gender", Value: v[2], Cause: err}
	}

	return &Patient{
		Name:    v[0],
		DOB:     dob,
		Gender:  gender,
		Phone:   web.Text(v[3]),
		Address: web.Text(v[4]),
		Email:   web.Text(v[5]),
	}, nil
}

// -- Doctor Handlers --

func (h *Handler) ListDoctors(c echo.Context) error {
	items, err := h.svc.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	return web.Page(c, echo.Map{"doctors": items})
}

func (h *Handler) DoctorForm(c echo.Context) error {
	return web.Page(c, echo.Map{})
}

func (h *Handler) AddDoctor(c echo.Context) error {
	f, err := web.ParseForm(c)
	if err != nil {
		return err
	}
	name, err := f.Required("name")
	if err != nil {
		return err
	}

	d := &Doctor{
		Name:       name,
		Specialty:  web.Text(f.Optional("specialty")),
		Phone:      web.Text(f.Optional("phone")),
		Email:      web.Text(f.Optional("email")),
		Department: web.Text(f.Optional("department")),
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), d); err != nil {
		return err
	}
	return web.RedirectWithNotice(c, "/doctors", NoticeDoctorAdded)
}
