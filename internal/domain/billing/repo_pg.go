package billing

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicrecords/clinic/internal/platform/db"
)

// =========== Bill Repository ===========

type billRepoPG struct{ pool *pgxpool.Pool }

func NewBillRepoPG(pool *pgxpool.Pool) BillRepository { return &billRepoPG{pool: pool} }

const billCols = `bill_id, patient_id, appointment_id, date_issued, total_amount, status::text`

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill
	if err := row.Scan(&b.ID, &b.PatientID, &b.AppointmentID, &b.DateIssued, &b.TotalAmount, &b.Status); err != nil {
		return nil, db.Classify(err)
	}
	return &b, nil
}

func (r *billRepoPG) Create(ctx context.Context, b *Bill) error {
	if b.Status == "" {
		b.Status = BillUnpaid
	}
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO bill (patient_id, appointment_id, date_issued, total_amount, status)
		VALUES ($1, $2, COALESCE($3::date, CURRENT_DATE), $4, $5::text::bill_status_enum)
		RETURNING bill_id, date_issued`,
		b.PatientID, b.AppointmentID, b.DateIssued, b.TotalAmount, b.Status,
	).Scan(&b.ID, &b.DateIssued)
	return db.Classify(err)
}

func (r *billRepoPG) GetByID(ctx context.Context, id int64) (*Bill, error) {
	return scanBill(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+billCols+` FROM bill WHERE bill_id = $1`, id))
}

func (r *billRepoPG) List(ctx context.Context) ([]*Bill, error) {
	return r.query(ctx, `SELECT `+billCols+` FROM bill ORDER BY bill_id`)
}

func (r *billRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Bill, error) {
	return r.query(ctx, `SELECT `+billCols+` FROM bill WHERE patient_id = $1 ORDER BY bill_id`, patientID)
}

func (r *billRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Bill, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, db.Classify(rows.Err())
}

// =========== Bill Item Repository ===========

type billItemRepoPG struct{ pool *pgxpool.Pool }

func NewBillItemRepoPG(pool *pgxpool.Pool) BillItemRepository { return &billItemRepoPG{pool: pool} }

func (r *billItemRepoPG) Create(ctx context.Context, item *BillItem) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO bill_item (bill_id, description, amount)
		VALUES ($1, $2, $3)
		RETURNING item_id`,
		item.BillID, item.Description, item.Amount,
	).Scan(&item.ID)
	return db.Classify(err)
}

func (r *billItemRepoPG) ListByBill(ctx context.Context, billID int64) ([]*BillItem, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx,
		`SELECT item_id, bill_id, description, amount FROM bill_item WHERE bill_id = $1 ORDER BY item_id`, billID)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*BillItem{}
	for rows.Next() {
		var it BillItem
		if err := rows.Scan(&it.ID, &it.BillID, &it.Description, &it.Amount); err != nil {
			return nil, db.Classify(err)
		}
		items = append(items, &it)
	}
	return items, db.Classify(rows.Err())
}
