package identity

import "context"

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	List(ctx context.Context) ([]*Patient, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id int64) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)
}
