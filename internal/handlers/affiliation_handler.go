package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"assetVerse/internal/models"
	"assetVerse/internal/services"
)

type AffiliationHandler struct {
	Service *services.AffiliationService
}

// GetAffiliations lists the employees affiliated with the authenticated HR.
func (h *AffiliationHandler) GetAffiliations(w http.ResponseWriter, r *http.Request) {
	hrEmail := r.URL.Query().Get("email")
	if hrEmail == "" || hrEmail != principalEmail(r) {
		http.Error(w, "Unauthorized accessed", http.StatusBadRequest)
		return
	}

	affiliations, err := h.Service.GetByHREmail(r.Context(), hrEmail)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(affiliations)
}

// GetCompanies lists the distinct companies the authenticated employee is
// affiliated with.
func (h *AffiliationHandler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.GetCompaniesByEmployee(r.Context(), principalEmail(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companies)
}

// DeleteAffiliation revokes an affiliation and frees the HR's capacity slot.
func (h *AffiliationHandler) DeleteAffiliation(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing affiliation ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.RevokeAffiliation(r.Context(), id, principalEmail(r)); err != nil {
		if errors.Is(err, models.ErrAffiliationNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
