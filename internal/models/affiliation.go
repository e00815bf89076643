package models

import "time"

const AffiliationStatusActive = "active"

// Affiliation asserts that an employee is associated with an HR's company.
// At most one row exists per (employee, HR) pair; it is created lazily on the
// first approved request between the two.
type Affiliation struct {
	ID              string    `json:"id"`
	EmployeeEmail   string    `json:"employeeEmail"`
	EmployeeName    string    `json:"employeeName"`
	EmployeeImage   string    `json:"employeeImage,omitempty"`
	HREmail         string    `json:"hrEmail"`
	CompanyName     string    `json:"companyName"`
	CompanyLogo     string    `json:"companyLogo,omitempty"`
	AffiliationDate time.Time `json:"affiliationDate"`
	Status          string    `json:"status"`
}

// Company is the aggregation row for an employee's affiliated companies.
type Company struct {
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo,omitempty"`
	HREmail     string `json:"hrEmail"`
}
