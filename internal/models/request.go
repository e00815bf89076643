package models

import "time"

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo enforces the request lifecycle: pending is the only state
// with outgoing edges.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Request struct {
	ID             string        `json:"id"`
	AssetID        string        `json:"assetId"`
	AssetName      string        `json:"assetName"`
	AssetType      string        `json:"assetType"`
	AssetImage     string        `json:"assetImage,omitempty"`
	RequesterEmail string        `json:"requesterEmail"`
	RequesterName  string        `json:"requesterName"`
	HREmail        string        `json:"hrEmail"`
	CompanyName    string        `json:"companyName,omitempty"`
	Note           string        `json:"note,omitempty"`
	RequestStatus  RequestStatus `json:"requestStatus"`
	RequestDate    time.Time     `json:"requestDate"`
	ApprovedDate   *time.Time    `json:"approvedDate,omitempty"`
	ProcessedBy    *string       `json:"processedBy,omitempty"`
}
