package identity

import (
	"context"
	"fmt"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
}

func NewService(patients PatientRepository, doctors DoctorRepository) *Service {
	return &Service{patients: patients, doctors: doctors}
}

// -- Patient --

// CreatePatient stores p and sets its ID. Required-field checks are left to
// the database so every rejected row surfaces the same way.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if err := s.patients.Create(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient %d: %w", id, err)
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*Patient, error) {
	items, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return items, nil
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := s.doctors.Create(ctx, d); err != nil {
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get doctor %d: %w", id, err)
	}
	return d, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*Doctor, error) {
	items, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return items, nil
}
