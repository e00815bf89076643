package models

import "time"

const PaymentStatusPaid = "paid"

// Payment is keyed by the provider transaction id; the same callback may be
// delivered more than once and must insert at most one row.
type Payment struct {
	TxnID         string    `json:"txnId"`
	HREmail       string    `json:"hrEmail"`
	PackageID     string    `json:"packageId"`
	PackageName   string    `json:"packageName"`
	EmployeeLimit int       `json:"employeeLimit"`
	Amount        float64   `json:"amount"`
	PaymentDate   time.Time `json:"paymentDate"`
	Status        string    `json:"status"`
}

// Package is a purchasable subscription tier.
type Package struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	EmployeeLimit int     `json:"employeeLimit"`
	Price         float64 `json:"price"`
}
