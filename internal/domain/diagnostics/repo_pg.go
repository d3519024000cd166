package diagnostics

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicrecords/clinic/internal/platform/db"
)

type labResultRepoPG struct{ pool *pgxpool.Pool }

func NewLabResultRepoPG(pool *pgxpool.Pool) LabResultRepository {
	return &labResultRepoPG{pool: pool}
}

const labCols = `result_id, patient_id, test_name, test_date, result_value, status::text, notes`

func scanLabResult(row pgx.Row) (*LabResult, error) {
	var r LabResult
	if err := row.Scan(&r.ID, &r.PatientID, &r.TestName, &r.TestDate, &r.ResultValue, &r.Status, &r.Notes); err != nil {
		return nil, db.Classify(err)
	}
	return &r, nil
}

func (r *labResultRepoPG) Create(ctx context.Context, lr *LabResult) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO lab_result (patient_id, test_name, test_date, result_value, status, notes)
		VALUES ($1, $2, COALESCE($3::date, CURRENT_DATE), $4, $5::text::result_status_enum, $6)
		RETURNING result_id, test_date`,
		lr.PatientID, lr.TestName, lr.TestDate, lr.ResultValue, lr.Status, lr.Notes,
	).Scan(&lr.ID, &lr.TestDate)
	return db.Classify(err)
}

func (r *labResultRepoPG) GetByID(ctx context.Context, id int64) (*LabResult, error) {
	return scanLabResult(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+labCols+` FROM lab_result WHERE result_id = $1`, id))
}

func (r *labResultRepoPG) List(ctx context.Context) ([]*LabResult, error) {
	return r.query(ctx, `SELECT `+labCols+` FROM lab_result ORDER BY result_id`)
}

func (r *labResultRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*LabResult, error) {
	return r.query(ctx, `SELECT `+labCols+` FROM lab_result WHERE patient_id = $1 ORDER BY result_id`, patientID)
}

func (r *labResultRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*LabResult, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*LabResult{}
	for rows.Next() {
		lr, err := scanLabResult(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lr)
	}
	return items, db.Classify(rows.Err())
}
