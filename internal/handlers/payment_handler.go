package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"assetVerse/internal/models"
	"assetVerse/internal/services"
)

type PaymentHandler struct {
	Service *services.PaymentService
}

// POST /payments/checkout
// { "packageId": "standard" }
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PackageID string `json:"packageId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txnID, payURL, err := h.Service.CreateCheckout(r.Context(), principalEmail(r), req.PackageID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPackageNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, models.ErrHRNotFound), errors.Is(err, models.ErrUserNotFound):
			http.Error(w, "Hr not found", http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"txn_id": txnID,
		"url":    payURL,
	})
}

// POST /payments/result (application/x-www-form-urlencoded)
// The provider sends OutSum, InvId, SignatureValue and the echoed Shp_ params.
// Delivered at-least-once; processing is idempotent on InvId.
func (h *PaymentHandler) PaymentResult(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	outSum := r.FormValue("OutSum")
	txnID := r.FormValue("InvId")
	signature := r.FormValue("SignatureValue")
	hrEmail := r.FormValue("Shp_email")
	packageID := r.FormValue("Shp_package")

	if !h.Service.Checkout.VerifyResult(outSum, txnID, hrEmail, packageID, signature) {
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	if _, err := h.Service.HandlePaymentResult(r.Context(), txnID, hrEmail, packageID, outSum); err != nil {
		if errors.Is(err, models.ErrPackageNotFound) || errors.Is(err, models.ErrHRNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte("OK" + txnID))
}

func (h *PaymentHandler) GetPayments(w http.ResponseWriter, r *http.Request) {
	hrEmail := r.URL.Query().Get("email")
	if hrEmail == "" || hrEmail != principalEmail(r) {
		http.Error(w, "Unauthorized accessed", http.StatusBadRequest)
		return
	}

	payments, err := h.Service.GetPaymentsByHREmail(r.Context(), hrEmail)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func (h *PaymentHandler) GetPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.Service.GetAllPackages(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(packages)
}
