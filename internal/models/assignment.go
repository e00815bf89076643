package models

import "time"

const AssignmentStatusAssigned = "assigned"

// Assignment is append-only: one record per approved request, never updated.
// Asset fields are copied at approval time on purpose; later edits to the
// asset do not rewrite history.
type Assignment struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"assetId"`
	AssetName      string     `json:"assetName"`
	AssetType      string     `json:"assetType"`
	AssetImage     string     `json:"assetImage,omitempty"`
	EmployeeEmail  string     `json:"employeeEmail"`
	EmployeeName   string     `json:"employeeName"`
	HREmail        string     `json:"hrEmail"`
	CompanyName    string     `json:"companyName,omitempty"`
	AssignmentDate time.Time  `json:"assignmentDate"`
	ReturnDate     *time.Time `json:"returnDate,omitempty"`
	Status         string     `json:"status"`
}
