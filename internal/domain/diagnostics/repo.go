package diagnostics

import "context"

type LabResultRepository interface {
	Create(ctx context.Context, r *LabResult) error
	GetByID(ctx context.Context, id int64) (*LabResult, error)
	List(ctx context.Context) ([]*LabResult, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*LabResult, error)
}
