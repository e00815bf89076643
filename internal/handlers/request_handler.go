package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"assetVerse/internal/models"
	"assetVerse/internal/services"
)

// Notifier pushes an event to a connected employee. Implementations are best
// effort; failures must not affect the request outcome.
type Notifier interface {
	Notify(email string, event interface{})
}

type RequestHandler struct {
	Service  *services.RequestService
	Approval *services.ApprovalService
	Notifier Notifier
}

func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AssetID string `json:"assetId"`
		Note    string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	request, err := h.Service.CreateRequest(r.Context(), principalEmail(r), body.AssetID, body.Note)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAssetNotFound), errors.Is(err, models.ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidRequest):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

// GetRequests lists the requests addressed to an HR. The ?email= parameter
// must match the authenticated principal.
func (h *RequestHandler) GetRequests(w http.ResponseWriter, r *http.Request) {
	hrEmail := r.URL.Query().Get("email")
	if hrEmail == "" || hrEmail != principalEmail(r) {
		http.Error(w, "Unauthorized accessed", http.StatusBadRequest)
		return
	}

	requests, err := h.Service.GetRequestsByHREmail(r.Context(), hrEmail)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// GetMyRequests lists the authenticated employee's own requests.
func (h *RequestHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.GetRequestsByRequester(r.Context(), principalEmail(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// ApproveRequest runs the approval workflow and returns the created
// assignment.
func (h *RequestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing request ID", http.StatusBadRequest)
		return
	}

	assignment, err := h.Approval.Approve(r.Context(), id, principalEmail(r))
	if err != nil {
		http.Error(w, err.Error(), approvalErrorStatus(err))
		return
	}

	if h.Notifier != nil {
		h.Notifier.Notify(assignment.EmployeeEmail, map[string]string{
			"type":      "request_approved",
			"requestId": id,
			"assetName": assignment.AssetName,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assignment)
}

func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing request ID", http.StatusBadRequest)
		return
	}

	request, err := h.Approval.Reject(r.Context(), id, principalEmail(r))
	if err != nil {
		http.Error(w, err.Error(), approvalErrorStatus(err))
		return
	}

	if h.Notifier != nil {
		h.Notifier.Notify(request.RequesterEmail, map[string]string{
			"type":      "request_rejected",
			"requestId": id,
			"assetName": request.AssetName,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

func (h *RequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	if id == "" {
		http.Error(w, "Missing request ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteRequest(r.Context(), id, principalEmail(r)); err != nil {
		if errors.Is(err, models.ErrRequestNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
