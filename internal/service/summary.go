package service

import (
	"strconv"
	"strings"

	"fieldrep/internal/model"

	"github.com/shopspring/decimal"
)

const currencySymbol = "₹"

// money renders whole amounts without paise ("₹300") and anything else
// with two places ("₹118.50").
func money(d decimal.Decimal) string {
	if d.IsInteger() {
		return currencySymbol + d.Truncate(0).String()
	}
	return currencySymbol + d.StringFixed(2)
}

// OrderSummary renders the human-readable text stored with an order. Context
// lines (hospital, doctor, remarks) only appear when supplied.
func OrderSummary(o *model.OrderRequest) string {
	var b strings.Builder
	line := func(k, v string) {
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteByte('\n')
	}

	line("Order Type", o.Type)
	line("Product", o.ProductName)
	line("Quantity", strconv.Itoa(o.Quantity))
	line("Price", money(o.Price))
	line("PTS", money(o.PTS))
	line("PTR", money(o.PTR))
	line("Total", money(o.TotalAmount))
	line("Priority", o.Priority)
	if o.HospitalName != "" {
		line("Hospital", o.HospitalName)
	}
	if o.DoctorName != "" {
		line("Doctor", o.DoctorName)
	}
	if o.Remarks != "" {
		line("Remarks", o.Remarks)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
