package identity

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/web"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func validPatientForm() url.Values {
	return url.Values{
		"name":    {"Grace Hopper"},
		"dob":     {"1906-12-09"},
		"gender":  {"F"},
		"phone":   {"555-0100"},
		"address": {"1 Navy Way"},
		"email":   {"grace@example.com"},
	}
}

// -- Patient Handler Tests --

func TestHandler_AddPatient(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(validPatientForm()), rec)

	if err := h.AddPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/patients" {
		t.Errorf("expected redirect to /patients, got %s", loc)
	}

	items, _ := h.svc.ListPatients(c.Request().Context())
	if len(items) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(items))
	}
	p := items[0]
	if p.Name != "Grace Hopper" || *p.Gender != GenderFemale || *p.Email != "grace@example.com" {
		t.Errorf("unexpected patient: %+v", p)
	}
	if p.DOB == nil || p.DOB.Format(web.DateLayout) != "1906-12-09" {
		t.Errorf("unexpected dob: %v", p.DOB)
	}
}

func TestHandler_AddPatient_EmptyOptionalFieldsStoredAsNull(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("dob", "")
	form.Set("gender", "")
	form.Set("phone", "")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	if err := h.AddPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := h.svc.GetPatient(c.Request().Context(), 1)
	if p.DOB != nil || p.Gender != nil || p.Phone != nil {
		t.Errorf("expected nil optional fields, got %+v", p)
	}
}

func TestHandler_AddPatient_MissingField(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Del("email")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	err := h.AddPatient(c)
	var missing *web.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "email" {
		t.Fatalf("expected MissingFieldError for email, got %v", err)
	}
	if items, _ := h.svc.ListPatients(c.Request().Context()); len(items) != 0 {
		t.Errorf("expected no patient stored, got %d", len(items))
	}
}

func TestHandler_AddPatient_BadGender(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("gender", "X")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	var fe *web.FormatError
	if err := h.AddPatient(c); !errors.As(err, &fe) || fe.Field != "gender" {
		t.Fatalf("expected FormatError for gender, got %v", err)
	}
}

func TestHandler_AddPatient_BadDOB(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("dob", "not-a-date")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	var fe *web.FormatError
	if err := h.AddPatient(c); !errors.As(err, &fe) || fe.Field != "dob" {
		t.Fatalf("expected FormatError for dob, got %v", err)
	}
}

func TestHandler_AddPatient_EmptyName(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("name", "")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	err := h.AddPatient(c)
	if err == nil {
		t.Fatal("expected storage rejection for empty name")
	}
	if web.StatusFor(err) != http.StatusConflict {
		t.Errorf("expected 409 mapping, got %d", web.StatusFor(err))
	}
}

func TestHandler_AddPatient_KeepsValuesAsSubmitted(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("name", "  Ada Lovelace ")
	form.Set("phone", " 555 ")
	form.Set("address", "\t12 St James's Square")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	if err := h.AddPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, err := h.svc.GetPatient(c.Request().Context(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "  Ada Lovelace " {
		t.Errorf("expected name stored unchanged, got %q", p.Name)
	}
	if p.Phone == nil || *p.Phone != " 555 " {
		t.Errorf("expected phone stored unchanged, got %v", p.Phone)
	}
	if p.Address == nil || *p.Address != "\t12 St James's Square" {
		t.Errorf("expected address stored unchanged, got %v", p.Address)
	}
}

func TestHandler_AddPatient_WhitespaceNameAccepted(t *testing.T) {
	h, e := newTestHandler()
	form := validPatientForm()
	form.Set("name", "   ")
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	if err := h.AddPatient(c); err != nil {
		t.Fatalf("expected whitespace-only name to be stored, got %v", err)
	}
	if p, _ := h.svc.GetPatient(c.Request().Context(), 1); p == nil || p.Name != "   " {
		t.Errorf("unexpected patient: %+v", p)
	}
}

func TestHandler_ListPatients(t *testing.T) {
	h, e := newTestHandler()
	h.svc.CreatePatient(nil, &Patient{Name: "One"})
	h.svc.CreatePatient(nil, &Patient{Name: "Two"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), rec)
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Patients []Patient `json:"patients"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Patients) != 2 || body.Patients[0].Name != "One" {
		t.Errorf("unexpected listing: %+v", body.Patients)
	}
}

func TestHandler_ListPatients_Empty(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients", nil), rec)

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"patients":[]`) {
		t.Errorf("expected empty array, got %s", rec.Body.String())
	}
}

func TestHandler_PatientForm(t *testing.T) {
	h, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/patients/add", nil), rec)

	if err := h.PatientForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"genders":["M","F"]`) {
		t.Errorf("unexpected form body: %s", rec.Body.String())
	}
}

// -- Doctor Handler Tests --

func TestHandler_AddDoctor(t *testing.T) {
	h, e := newTestHandler()
	form := url.Values{"name": {"Dr. Who"}, "specialty": {"Time"}, "department": {""}}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(form), rec)

	if err := h.AddDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/doctors" {
		t.Errorf("expected 302 to /doctors, got %d", rec.Code)
	}

	d, err := h.svc.GetDoctor(c.Request().Context(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *d.Specialty != "Time" || d.Department != nil || d.Phone != nil {
		t.Errorf("unexpected doctor: %+v", d)
	}
}

func TestHandler_AddDoctor_MissingName(t *testing.T) {
	h, e := newTestHandler()
	c := e.NewContext(formRequest(url.Values{"specialty": {"x"}}), httptest.NewRecorder())

	var missing *web.MissingFieldError
	if err := h.AddDoctor(c); !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestHandler_ListDoctors(t *testing.T) {
	h, e := newTestHandler()
	h.svc.CreateDoctor(nil, &Doctor{Name: "Dr. A"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/doctors", nil), rec)
	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Dr. A") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
