package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetVerse/internal/models"
)

func TestApprovalErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{models.ErrRequestNotFound, http.StatusNotFound},
		{models.ErrAssetNotFound, http.StatusNotFound},
		{models.ErrHRNotFound, http.StatusNotFound},
		{models.ErrAssetOutOfStock, http.StatusNotFound},
		{models.ErrCapacityReached, http.StatusNotFound},
		{models.ErrRequestAlreadyApproved, http.StatusBadRequest},
		{models.ErrRequestAlreadyRejected, http.StatusBadRequest},
		{models.ErrNotRequestOwner, http.StatusForbidden},
		{models.ErrStoreTimeout, http.StatusGatewayTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := approvalErrorStatus(tc.err); got != tc.want {
			t.Errorf("approvalErrorStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPrincipalEmail(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/requests/my", nil)
	if got := principalEmail(r); got != "" {
		t.Errorf("unauthenticated request yielded %q", got)
	}

	r = r.WithContext(context.WithValue(r.Context(), "email", "emp@corp.kz"))
	if got := principalEmail(r); got != "emp@corp.kz" {
		t.Errorf("principalEmail = %q", got)
	}
}

func TestGetAssets_PrincipalMismatch(t *testing.T) {
	h := &AssetHandler{}

	r := httptest.NewRequest(http.MethodGet, "/assets?email=other@corp.kz", nil)
	r = r.WithContext(context.WithValue(r.Context(), "email", "hr@corp.kz"))
	rec := httptest.NewRecorder()

	h.GetAssets(rec, r)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
