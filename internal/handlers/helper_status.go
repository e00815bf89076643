package handlers

import (
	"errors"
	"net/http"

	"assetVerse/internal/models"
)

// principalEmail returns the verified email the auth middleware stored in the
// request context. Empty when the chain did not authenticate.
func principalEmail(r *http.Request) string {
	email, _ := r.Context().Value("email").(string)
	return email
}

// approvalErrorStatus maps the orchestrator's typed failures onto the wire
// contract. Out-of-stock and capacity failures surface as 404 like missing
// resources do; processed-request replays are client errors.
func approvalErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrAssetNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrHRNotFound),
		errors.Is(err, models.ErrAssetOutOfStock),
		errors.Is(err, models.ErrCapacityReached):
		return http.StatusNotFound
	case errors.Is(err, models.ErrRequestAlreadyApproved),
		errors.Is(err, models.ErrRequestAlreadyRejected):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotRequestOwner):
		return http.StatusForbidden
	case errors.Is(err, models.ErrStoreTimeout):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
