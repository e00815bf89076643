package handlers

import (
	"encoding/json"
	"net/http"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

type AssignmentHandler struct {
	AssignmentRepo *repositories.AssignmentRepository
	UserRepo       *repositories.UserRepository
}

// GetAssignments lists assignments for the authenticated account: an HR sees
// the assignments they created, an employee the assets assigned to them.
func (h *AssignmentHandler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" || email != principalEmail(r) {
		http.Error(w, "Unauthorized accessed", http.StatusBadRequest)
		return
	}

	user, err := h.UserRepo.GetUserByEmail(r.Context(), email)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	var assignments []models.Assignment
	if user.Role == models.RoleHR {
		assignments, err = h.AssignmentRepo.GetAssignmentsByHREmail(r.Context(), email)
	} else {
		assignments, err = h.AssignmentRepo.GetAssignmentsByEmployee(r.Context(), email)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignments)
}
