package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicrecords/clinic/internal/platform/db"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

const patientCols = `patient_id, name, dob, gender::text, phone, address, email`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	if err := row.Scan(&p.ID, &p.Name, &p.DOB, &p.Gender, &p.Phone, &p.Address, &p.Email); err != nil {
		return nil, db.Classify(err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO patient (name, dob, gender, phone, address, email)
		VALUES ($1, $2, $3::text::gender_enum, $4, $5, $6)
		RETURNING patient_id`,
		p.Name, p.DOB, p.Gender, p.Phone, p.Address, p.Email,
	).Scan(&p.ID)
	return db.Classify(err)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+` FROM patient WHERE patient_id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY patient_id`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, db.Classify(rows.Err())
}

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

const doctorCols = `doctor_id, name, specialty, phone, email, department`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	if err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Phone, &d.Email, &d.Department); err != nil {
		return nil, db.Classify(err)
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO doctor (name, specialty, phone, email, department)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING doctor_id`,
		d.Name, d.Specialty, d.Phone, d.Email, d.Department,
	).Scan(&d.ID)
	return db.Classify(err)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id int64) (*Doctor, error) {
	return scanDoctor(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE doctor_id = $1`, id))
}

func (r *doctorRepoPG) List(ctx context.Context) ([]*Doctor, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY doctor_id`)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, db.Classify(rows.Err())
}
