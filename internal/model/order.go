package model

import "github.com/shopspring/decimal"

// Order types offered on the order form
const (
	OrderTypeRegular = "Regular Order"
	OrderTypeUrgent  = "Urgent Order"
	OrderTypeScheme  = "Scheme Order"
	OrderTypeSample  = "Sample Order"
)

// OrderTypes lists the order types in picker order.
var OrderTypes = []string{OrderTypeRegular, OrderTypeUrgent, OrderTypeScheme, OrderTypeSample}

// ParseOrderType matches an order type case-insensitively.
func ParseOrderType(s string) (string, bool) {
	return matchFold(s, OrderTypes)
}

// OrderRequest is a product order. Product fields are snapshotted at
// submission time and TotalAmount is always Price x Quantity.
type OrderRequest struct {
	Request
	Type         string          `gorm:"type:varchar(30);not null" json:"type"`
	ProductID    string          `gorm:"type:varchar(64);not null;index" json:"product_id"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity     int             `gorm:"type:int;not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	PTS          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"pts"`
	PTR          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"ptr"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_amount"`
	HospitalName string          `gorm:"type:varchar(255)" json:"hospital_name"`
	DoctorName   string          `gorm:"type:varchar(255)" json:"doctor_name"`
	Remarks      string          `gorm:"type:text" json:"remarks"`
	Summary      string          `gorm:"type:text;not null" json:"summary"`
}

func (OrderRequest) TableName() string { return "orders" }
