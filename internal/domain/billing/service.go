package billing

import (
	"context"
	"fmt"

	"github.com/clinicrecords/clinic/internal/domain/identity"
	"github.com/clinicrecords/clinic/internal/domain/scheduling"
	"github.com/clinicrecords/clinic/internal/platform/db"
)

type PatientDirectory interface {
	GetPatient(ctx context.Context, id int64) (*identity.Patient, error)
	ListPatients(ctx context.Context) ([]*identity.Patient, error)
}

type AppointmentLister interface {
	ListAppointments(ctx context.Context) ([]*scheduling.Appointment, error)
}

type Service struct {
	bills    BillRepository
	items    BillItemRepository
	tx       db.TxRunner
	patients PatientDirectory
	appts    AppointmentLister
}

func NewService(bills BillRepository, items BillItemRepository, tx db.TxRunner, patients PatientDirectory, appts AppointmentLister) *Service {
	return &Service{bills: bills, items: items, tx: tx, patients: patients, appts: appts}
}

// CreateBill stores the bill, then each item pointing at the new bill id.
// Everything runs in one transaction: if any item is rejected the bill is
// rolled back with it.
func (s *Service) CreateBill(ctx context.Context, b *Bill, items []*BillItem) error {
	if b.Status == "" {
		b.Status = BillUnpaid
	}
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.bills.Create(ctx, b); err != nil {
			return err
		}
		for i, it := range items {
			it.BillID = b.ID
			if err := s.items.Create(ctx, it); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		b.ID = 0
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (s *Service) GetBill(ctx context.Context, id int64) (*Bill, error) {
	b, err := s.bills.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get bill %d: %w", id, err)
	}
	return b, nil
}

// GetBillDetail loads the bill, its patient and all of its items.
func (s *Service) GetBillDetail(ctx context.Context, id int64) (*BillDetail, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetPatient(ctx, b.PatientID)
	if err != nil {
		return nil, fmt.Errorf("bill %d: %w", id, err)
	}
	items, err := s.items.ListByBill(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("bill %d items: %w", id, err)
	}
	return &BillDetail{Bill: b, Patient: p, Items: items}, nil
}

func (s *Service) ListBills(ctx context.Context) ([]*Bill, error) {
	items, err := s.bills.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return items, nil
}

func (s *Service) ListBillsByPatient(ctx context.Context, patientID int64) ([]*Bill, error) {
	items, err := s.bills.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list bills for patient %d: %w", patientID, err)
	}
	return items, nil
}

// FormChoices returns the patients and appointments a new bill may refer to.
func (s *Service) FormChoices(ctx context.Context) ([]*identity.Patient, []*scheduling.Appointment, error) {
	patients, err := s.patients.ListPatients(ctx)
	if err != nil {
		return nil, nil, err
	}
	appts, err := s.appts.ListAppointments(ctx)
	if err != nil {
		return nil, nil, err
	}
	return patients, appts, nil
}
