package identity

import (
	"fmt"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender accepts "M" or "F". An empty value means not recorded.
func ParseGender(v string) (*Gender, error) {
	if v == "" {
		return nil, nil
	}
	g := Gender(v)
	switch g {
	case GenderMale, GenderFemale:
		return &g, nil
	}
	return nil, fmt.Errorf("gender must be one of M, F")
}

// Patient maps to the patient table.
type Patient struct {
	ID      int64      `db:"patient_id" json:"patient_id"`
	Name    string     `db:"name" json:"name"`
	DOB     *time.Time `db:"dob" json:"dob,omitempty"`
	Gender  *Gender    `db:"gender" json:"gender,omitempty"`
	Phone   *string    `db:"phone" json:"phone,omitempty"`
	Address *string    `db:"address" json:"address,omitempty"`
	Email   *string    `db:"email" json:"email,omitempty"`
}

// Doctor maps to the doctor table.
type Doctor struct {
	ID         int64   `db:"doctor_id" json:"doctor_id"`
	Name       string  `db:"name" json:"name"`
	Specialty  *string `db:"specialty" json:"specialty,omitempty"`
	Phone      *string `db:"phone" json:"phone,omitempty"`
	Email      *string `db:"email" json:"email,omitempty"`
	Department *string `db:"department" json:"department,omitempty"`
}
