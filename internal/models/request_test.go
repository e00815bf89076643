package models

import "testing"

func TestRequestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		name string
		from RequestStatus
		to   RequestStatus
		want bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to pending", StatusPending, StatusPending, false},
		{"approved to rejected", StatusApproved, StatusRejected, false},
		{"approved to approved", StatusApproved, StatusApproved, false},
		{"rejected to approved", StatusRejected, StatusApproved, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	if !StatusApproved.Terminal() {
		t.Error("approved must be terminal")
	}
	if !StatusRejected.Terminal() {
		t.Error("rejected must be terminal")
	}
}

func TestRequestStatusValid(t *testing.T) {
	for _, s := range []RequestStatus{StatusPending, StatusApproved, StatusRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RequestStatus("cancelled").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestRegisterUserResolveEmail(t *testing.T) {
	hr := RegisterUser{Role: RoleHR, ManagerEmail: "hr@corp.kz", EmployeeEmail: "ignored@corp.kz"}
	if got := hr.ResolveEmail(); got != "hr@corp.kz" {
		t.Errorf("hr resolved email = %q, want manager email", got)
	}

	emp := RegisterUser{Role: RoleEmployee, EmployeeEmail: "emp@corp.kz"}
	if got := emp.ResolveEmail(); got != "emp@corp.kz" {
		t.Errorf("employee resolved email = %q, want employee email", got)
	}
}
