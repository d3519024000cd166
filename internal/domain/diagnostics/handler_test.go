package diagnostics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicrecords/clinic/internal/platform/web"
)

func newTestHandler() (*Handler, *mockLabResultRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/lab-results/add", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func TestHandler_AddLabResult(t *testing.T) {
	h, repo, e := newTestHandler()
	form := url.Values{
		"patient_id":   {"1"},
		"test_name":    {"Glucose"},
		"test_date":    {"2024-02-20"},
		"result_value": {"5.4 mmol/L"},
		"status":       {"Normal"},
		"notes":        {""},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(formRequest(form), rec)

	if err := h.AddLabResult(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/lab-results" {
		t.Errorf("expected 302 to /lab-results, got %d", rec.Code)
	}

	r := repo.items[1]
	if r == nil {
		t.Fatal("expected lab result stored")
	}
	if r.TestName != "Glucose" || *r.Status != ResultNormal || r.Notes != nil {
		t.Errorf("unexpected lab result: %+v", r)
	}
	if r.TestDate.Format(web.DateLayout) != "2024-02-20" {
		t.Errorf("unexpected test date: %v", r.TestDate)
	}
}

func TestHandler_AddLabResult_MinimalForm(t *testing.T) {
	h, repo, e := newTestHandler()
	c := e.NewContext(formRequest(url.Values{"patient_id": {"2"}, "test_name": {"CBC"}}), httptest.NewRecorder())

	if err := h.AddLabResult(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := repo.items[1]
	if r.Status != nil || r.TestDate == nil {
		t.Errorf("expected no status and defaulted date, got %+v", r)
	}
}

func TestHandler_AddLabResult_BadStatus(t *testing.T) {
	h, repo, e := newTestHandler()
	form := url.Values{"patient_id": {"1"}, "test_name": {"CBC"}, "status": {"Weird"}}
	c := e.NewContext(formRequest(form), httptest.NewRecorder())

	var fe *web.FormatError
	if err := h.AddLabResult(c); !errors.As(err, &fe) || fe.Field != "status" {
		t.Fatalf("expected FormatError for status, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("expected no rows")
	}
}

func TestHandler_AddLabResult_MissingTestName(t *testing.T) {
	h, _, e := newTestHandler()
	c := e.NewContext(formRequest(url.Values{"patient_id": {"1"}}), httptest.NewRecorder())

	var missing *web.MissingFieldError
	if err := h.AddLabResult(c); !errors.As(err, &missing) || missing.Field != "test_name" {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestHandler_LabResultForm(t *testing.T) {
	h, _, e := newTestHandler()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/lab-results/add", nil), rec)

	if err := h.LabResultForm(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"statuses":["Normal","Abnormal"]`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_ListLabResults(t *testing.T) {
	h, _, e := newTestHandler()
	h.svc.RecordLabResult(nil, &LabResult{PatientID: 1, TestName: "TSH"})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/lab-results", nil), rec)
	if err := h.ListLabResults(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"test_name":"TSH"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
