package scheduling

import (
	"fmt"
	"time"

	"github.com/clinicrecords/clinic/internal/domain/identity"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

func ParseAppointmentStatus(v string) (AppointmentStatus, error) {
	s := AppointmentStatus(v)
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("appointment status must be one of Scheduled, Completed, Cancelled")
}

// Appointment maps to the appointment table.
type Appointment struct {
	ID        int64             `db:"appointment_id" json:"appointment_id"`
	PatientID int64             `db:"patient_id" json:"patient_id"`
	DoctorID  int64             `db:"doctor_id" json:"doctor_id"`
	DateTime  time.Time         `db:"date_time" json:"date_time"`
	Status    AppointmentStatus `db:"status" json:"status"`
	Reason    *string           `db:"reason" json:"reason,omitempty"`
}

// AppointmentDetail is an appointment with its patient and doctor resolved.
type AppointmentDetail struct {
	Appointment *Appointment      `json:"appointment"`
	Patient     *identity.Patient `json:"patient"`
	Doctor      *identity.Doctor  `json:"doctor"`
}
