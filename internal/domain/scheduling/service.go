package scheduling

import (
	"context"
	"fmt"

	"github.com/clinicrecords/clinic/internal/domain/identity"
)

// Directory resolves the patients and doctors an appointment refers to.
type Directory interface {
	GetPatient(ctx context.Context, id int64) (*identity.Patient, error)
	GetDoctor(ctx context.Context, id int64) (*identity.Doctor, error)
	ListPatients(ctx context.Context) ([]*identity.Patient, error)
	ListDoctors(ctx context.Context) ([]*identity.Doctor, error)
}

type Service struct {
	appts AppointmentRepository
	dir   Directory
}

func NewService(appts AppointmentRepository, dir Directory) *Service {
	return &Service{appts: appts, dir: dir}
}

// CreateAppointment stores a new appointment. Unknown patient or doctor ids
// are rejected by the database's foreign keys, not checked here. Double
// booking a doctor is allowed.
func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if err := s.appts.Create(ctx, a); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment %d: %w", id, err)
	}
	return a, nil
}

// GetAppointmentDetail loads the appointment, then its patient and doctor by
// separate lookups.
func (s *Service) GetAppointmentDetail(ctx context.Context, id int64) (*AppointmentDetail, error) {
	a, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.dir.GetPatient(ctx, a.PatientID)
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", id, err)
	}
	d, err := s.dir.GetDoctor(ctx, a.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", id, err)
	}
	return &AppointmentDetail{Appointment: a, Patient: p, Doctor: d}, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*Appointment, error) {
	items, err := s.appts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return items, nil
}

func (s *Service) ListAppointmentsByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	items, err := s.appts.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments for patient %d: %w", patientID, err)
	}
	return items, nil
}

// FormChoices returns everything the add-appointment form offers.
func (s *Service) FormChoices(ctx context.Context) ([]*identity.Patient, []*identity.Doctor, error) {
	patients, err := s.dir.ListPatients(ctx)
	if err != nil {
		return nil, nil, err
	}
	doctors, err := s.dir.ListDoctors(ctx)
	if err != nil {
		return nil, nil, err
	}
	return patients, doctors, nil
}
