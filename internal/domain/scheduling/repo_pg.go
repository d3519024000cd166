package scheduling

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinicrecords/clinic/internal/platform/db"
)

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

const apptCols = `appointment_id, patient_id, doctor_id, date_time, status::text, reason`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.DateTime, &a.Status, &a.Reason); err != nil {
		return nil, db.Classify(err)
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	err := db.Conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO appointment (patient_id, doctor_id, date_time, status, reason)
		VALUES ($1, $2, $3, $4::text::status_enum, $5)
		RETURNING appointment_id`,
		a.PatientID, a.DoctorID, a.DateTime, a.Status, a.Reason,
	).Scan(&a.ID)
	return db.Classify(err)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppointment(db.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointment WHERE appointment_id = $1`, id))
}

func (r *appointmentRepoPG) List(ctx context.Context) ([]*Appointment, error) {
	return r.query(ctx, `SELECT `+apptCols+` FROM appointment ORDER BY appointment_id`)
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return r.query(ctx, `SELECT `+apptCols+` FROM appointment WHERE patient_id = $1 ORDER BY date_time, appointment_id`, patientID)
}

func (r *appointmentRepoPG) query(ctx context.Context, sql string, args ...interface{}) ([]*Appointment, error) {
	rows, err := db.Conn(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, db.Classify(err)
	}
	defer rows.Close()

	items := []*Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, db.Classify(rows.Err())
}
