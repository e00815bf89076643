package models

import "time"

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// Defaults applied to a freshly registered HR account.
const (
	DefaultPackageLimit = 5
	DefaultSubscription = "basic"
)

type User struct {
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	Name             string     `json:"name"`
	ProfileImage     string     `json:"profileImage,omitempty"`
	CompanyName      string     `json:"companyName,omitempty"`
	CompanyLogo      string     `json:"companyLogo,omitempty"`
	PackageLimit     int        `json:"packageLimit,omitempty"`
	CurrentEmployees int        `json:"currentEmployees"`
	Subscription     string     `json:"subscription,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// RegisterUser is the registration payload. HR drafts carry the manager email,
// employee drafts carry the employee email; the resolved value becomes the
// account identity.
type RegisterUser struct {
	Role          string `json:"role"`
	Name          string `json:"name"`
	ManagerEmail  string `json:"managerEmail,omitempty"`
	EmployeeEmail string `json:"employeeEmail,omitempty"`
	ProfileImage  string `json:"profileImage,omitempty"`
	CompanyName   string `json:"companyName,omitempty"`
	CompanyLogo   string `json:"companyLogo,omitempty"`
}

func (r RegisterUser) ResolveEmail() string {
	if r.Role == RoleHR {
		return r.ManagerEmail
	}
	return r.EmployeeEmail
}
