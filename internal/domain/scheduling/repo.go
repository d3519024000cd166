package scheduling

import "context"

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	List(ctx context.Context) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error)
}
