package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"assetVerse/internal/models"
	"assetVerse/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

// CreateUser registers an HR or employee account. Open endpoint: registration
// happens before a token exists.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var draft models.RegisterUser
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), draft)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			http.Error(w, "User already exists", http.StatusConflict)
			return
		}
		if errors.Is(err, services.ErrInvalidRegistration) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(user)
}

// GetUserRole resolves an account by email. Used by the frontend right after
// sign-in to pick the dashboard.
func (h *UserHandler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "Missing email", http.StatusBadRequest)
		return
	}

	user, err := h.Service.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
