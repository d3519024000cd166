// Package chart assembles the per-patient view: the patient together with
// everything recorded against them.
package chart

import (
	"context"
	"fmt"

	"github.com/clinicrecords/clinic/internal/domain/billing"
	"github.com/clinicrecords/clinic/internal/domain/diagnostics"
	"github.com/clinicrecords/clinic/internal/domain/identity"
	"github.com/clinicrecords/clinic/internal/domain/scheduling"
)

type PatientSource interface {
	GetPatient(ctx context.Context, id int64) (*identity.Patient, error)
}

type AppointmentSource interface {
	ListAppointmentsByPatient(ctx context.Context, patientID int64) ([]*scheduling.Appointment, error)
}

type LabResultSource interface {
	ListLabResultsByPatient(ctx context.Context, patientID int64) ([]*diagnostics.LabResult, error)
}

type BillSource interface {
	ListBillsByPatient(ctx context.Context, patientID int64) ([]*billing.Bill, error)
}

type Chart struct {
	Patient      *identity.Patient         `json:"patient"`
	Appointments []*scheduling.Appointment `json:"appointments"`
	LabResults   []*diagnostics.LabResult  `json:"lab_results"`
	Bills        []*billing.Bill           `json:"bills"`
}

type Service struct {
	patients PatientSource
	appts    AppointmentSource
	labs     LabResultSource
	bills    BillSource
}

func NewService(patients PatientSource, appts AppointmentSource, labs LabResultSource, bills BillSource) *Service {
	return &Service{patients: patients, appts: appts, labs: labs, bills: bills}
}

func (s *Service) GetChart(ctx context.Context, patientID int64) (*Chart, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	ch := &Chart{Patient: p}
	if ch.Appointments, err = s.appts.ListAppointmentsByPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	if ch.LabResults, err = s.labs.ListLabResultsByPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	if ch.Bills, err = s.bills.ListBillsByPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	return ch, nil
}
