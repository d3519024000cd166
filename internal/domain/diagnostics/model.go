package diagnostics

import (
	"fmt"
	"time"
)

type ResultStatus string

const (
	ResultNormal   ResultStatus = "Normal"
	ResultAbnormal ResultStatus = "Abnormal"
)

var ResultStatuses = []ResultStatus{ResultNormal, ResultAbnormal}

// ParseResultStatus accepts Normal or Abnormal; "" means not yet assessed.
func ParseResultStatus(v string) (*ResultStatus, error) {
	if v == "" {
		return nil, nil
	}
	s := ResultStatus(v)
	switch s {
	case ResultNormal, ResultAbnormal:
		return &s, nil
	}
	return nil, fmt.Errorf("result status must be one of Normal, Abnormal")
}

// LabResult maps to the lab_result table. A nil TestDate on create lets the
// database default it to the current date.
type LabResult struct {
	ID          int64         `db:"result_id" json:"result_id"`
	PatientID   int64         `db:"patient_id" json:"patient_id"`
	TestName    string        `db:"test_name" json:"test_name"`
	TestDate    *time.Time    `db:"test_date" json:"test_date,omitempty"`
	ResultValue *string       `db:"result_value" json:"result_value,omitempty"`
	Status      *ResultStatus `db:"status" json:"status,omitempty"`
	Notes       *string       `db:"notes" json:"notes,omitempty"`
}
