package models

import (
	"time"

	"gorm.io/gorm"
)

// PQStatus values
const (
	PQPending  = "Pending"
	PQReceived = "Received"
)

// PQHardcopy values
const (
	HardcopyReceived    = "Received"
	HardcopyNotReceived = "Not Received"
)

// PermitCopyStatus values
const (
	PermitReceived    = "Received"
	PermitNotReceived = "Not Received"
	PermitNotRequired = "Not Required"
)

// PQRecord is one tracked export shipment and its certificate paperwork.
// Dates are ISO YYYY-MM-DD strings; CreatedAt is epoch milliseconds and is
// assigned once by the store.
type PQRecord struct {
	ID                   string     `gorm:"column:id;primaryKey;type:uuid" json:"id"`
	Date                 string     `gorm:"column:date;type:varchar(10);index" json:"date"`
	ShipperName          string     `gorm:"column:shipper_name" json:"shipperName"`
	Buyer                string     `gorm:"column:buyer" json:"buyer"`
	InvoiceNumber        string     `gorm:"column:invoice_number;index" json:"invoiceNumber"`
	Commodity            string     `gorm:"column:commodity" json:"commodity"`
	ShippingBillReceived YesNo      `gorm:"column:shipping_bill_received;type:boolean;not null;default:false" json:"shippingBillReceived"`
	PQStatus             string     `gorm:"column:pq_status;not null;index" json:"pqStatus"`
	PQHardcopy           string     `gorm:"column:pq_hardcopy" json:"pqHardcopy"`
	PermitCopyStatus     string     `gorm:"column:permit_copy_status" json:"permitCopyStatus"`
	DestinationPort      string     `gorm:"column:destination_port" json:"destinationPort"`
	Remarks              string     `gorm:"column:remarks" json:"remarks"`
	Attachments          StringList `gorm:"column:attachments;type:jsonb;default:'[]'" json:"attachments"`
	CreatedAt            int64      `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt            time.Time  `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name
func (PQRecord) TableName() string {
	return "pq_records"
}

// AfterFind fills the legacy defaults for records written before the
// hardcopy and permit fields existed, so the classifier always sees one of
// the declared enum values.
func (r *PQRecord) AfterFind(tx *gorm.DB) error {
	if r.PQHardcopy == "" {
		r.PQHardcopy = HardcopyNotReceived
	}
	if r.PermitCopyStatus == "" {
		r.PermitCopyStatus = PermitNotRequired
	}
	return nil
}

// ApplyEntryDefaults sets the entry-form defaults on a new record. The date
// defaults to today when the form left it empty.
func (r *PQRecord) ApplyEntryDefaults() {
	if r.Date == "" {
		r.Date = time.Now().Format("2006-01-02")
	}
	if r.ShippingBillReceived == "" {
		r.ShippingBillReceived = No
	}
	if r.PQStatus == "" {
		r.PQStatus = PQPending
	}
	if r.PQHardcopy == "" {
		r.PQHardcopy = HardcopyNotReceived
	}
	if r.PermitCopyStatus == "" {
		r.PermitCopyStatus = PermitNotRequired
	}
}
