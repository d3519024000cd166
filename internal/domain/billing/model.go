package billing

import (
	"fmt"
	"time"

	"github.com/clinicrecords/clinic/internal/domain/identity"
	"github.com/clinicrecords/clinic/internal/platform/web"
)

type BillStatus string

const (
	BillPaid   BillStatus = "Paid"
	BillUnpaid BillStatus = "Unpaid"
)

var BillStatuses = []BillStatus{BillPaid, BillUnpaid}

// ParseBillStatus accepts Paid or Unpaid. An empty value is Unpaid.
func ParseBillStatus(v string) (BillStatus, error) {
	switch s := BillStatus(v); s {
	case "":
		return BillUnpaid, nil
	case BillPaid, BillUnpaid:
		return s, nil
	}
	return "", fmt.Errorf("bill status must be one of Paid, Unpaid")
}

// Bill maps to the bill table. A nil DateIssued on create lets the database
// default it to the current date.
type Bill struct {
	ID            int64      `db:"bill_id" json:"bill_id"`
	PatientID     int64      `db:"patient_id" json:"patient_id"`
	AppointmentID *int64     `db:"appointment_id" json:"appointment_id,omitempty"`
	DateIssued    *time.Time `db:"date_issued" json:"date_issued,omitempty"`
	TotalAmount   float64    `db:"total_amount" json:"total_amount"`
	Status        BillStatus `db:"status" json:"status"`
}

// BillItem maps to the bill_item table. Items only come into existence
// together with their bill.
type BillItem struct {
	ID          int64   `db:"item_id" json:"item_id"`
	BillID      int64   `db:"bill_id" json:"bill_id"`
	Description string  `db:"description" json:"description"`
	Amount      float64 `db:"amount" json:"amount"`
}

type BillDetail struct {
	Bill    *Bill             `json:"bill"`
	Patient *identity.Patient `json:"patient"`
	Items   []*BillItem       `json:"items"`
}

// PairItems zips the submitted item descriptions and amounts by position.
// The longer list is truncated, and a pair becomes an item only when both
// sides are non-empty. Every kept amount is parsed before anything is stored.
func PairItems(descriptions, amounts []string) ([]*BillItem, error) {
	n := len(descriptions)
	if len(amounts) < n {
		n = len(amounts)
	}

	items := make([]*BillItem, 0, n)
	for i := 0; i < n; i++ {
		if descriptions[i] == "" || amounts[i] == "" {
			continue
		}
		amount, err := web.ParseAmount(fmt.Sprintf("item_amount[%d]", i), amounts[i])
		if err != nil {
			return nil, err
		}
		items = append(items, &BillItem{Description: descriptions[i], Amount: amount})
	}
	return items, nil
}
