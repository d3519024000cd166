package diagnostics

import (
	"context"
	"fmt"

	"github.com/clinicrecords/clinic/internal/domain/identity"
)

type PatientLister interface {
	ListPatients(ctx context.Context) ([]*identity.Patient, error)
}

type Service struct {
	results  LabResultRepository
	patients PatientLister
}

func NewService(results LabResultRepository, patients PatientLister) *Service {
	return &Service{results: results, patients: patients}
}

func (s *Service) RecordLabResult(ctx context.Context, r *LabResult) error {
	if err := s.results.Create(ctx, r); err != nil {
		return fmt.Errorf("record lab result: %w", err)
	}
	return nil
}

func (s *Service) GetLabResult(ctx context.Context, id int64) (*LabResult, error) {
	r, err := s.results.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lab result %d: %w", id, err)
	}
	return r, nil
}

func (s *Service) ListLabResults(ctx context.Context) ([]*LabResult, error) {
	items, err := s.results.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lab results: %w", err)
	}
	return items, nil
}

func (s *Service) ListLabResultsByPatient(ctx context.Context, patientID int64) ([]*LabResult, error) {
	items, err := s.results.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list lab results for patient %d: %w", patientID, err)
	}
	return items, nil
}

func (s *Service) FormChoices(ctx context.Context) ([]*identity.Patient, error) {
	return s.patients.ListPatients(ctx)
}
