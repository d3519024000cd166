package billing

import "context"

type BillRepository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id int64) (*Bill, error)
	List(ctx context.Context) ([]*Bill, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error)
}

type BillItemRepository interface {
	Create(ctx context.Context, item *BillItem) error
	ListByBill(ctx context.Context, billID int64) ([]*BillItem, error)
}
