package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"

	"github.com/google/uuid"
)

type RequestRepository struct {
	DB *sql.DB
}

const requestColumns = `
	id, asset_id, asset_name, asset_type, asset_image,
	requester_email, requester_name, hr_email, company_name, note,
	request_status, request_date, approved_date, processed_by`

func scanRequest(row interface{ Scan(...interface{}) error }) (models.Request, error) {
	var req models.Request
	err := row.Scan(
		&req.ID, &req.AssetID, &req.AssetName, &req.AssetType, &req.AssetImage,
		&req.RequesterEmail, &req.RequesterName, &req.HREmail, &req.CompanyName, &req.Note,
		&req.RequestStatus, &req.RequestDate, &req.ApprovedDate, &req.ProcessedBy,
	)
	return req, err
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req models.Request) (models.Request, error) {
	req.ID = uuid.New().String()
	req.RequestStatus = models.StatusPending
	req.RequestDate = time.Now()

	query := `
		INSERT INTO requests
			(id, asset_id, asset_name, asset_type, asset_image,
			 requester_email, requester_name, hr_email, company_name, note,
			 request_status, request_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		req.ID, req.AssetID, req.AssetName, req.AssetType, req.AssetImage,
		req.RequesterEmail, req.RequesterName, req.HREmail, req.CompanyName, req.Note,
		req.RequestStatus, req.RequestDate,
	)
	if err != nil {
		if isForeignKeyConstraintError(err) {
			return models.Request{}, models.ErrAssetNotFound
		}
		return models.Request{}, err
	}
	return req, nil
}

func (r *RequestRepository) GetRequestByID(ctx context.Context, id string) (models.Request, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT`+requestColumns+` FROM requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, models.ErrRequestNotFound
	}
	if err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// GetRequestForApproval locks the request row for the lifetime of the approval
// transaction so a concurrent approval of the same request serializes here.
func (r *RequestRepository) GetRequestForApproval(ctx context.Context, tx *sql.Tx, id string) (models.Request, error) {
	row := tx.QueryRowContext(ctx, `SELECT`+requestColumns+` FROM requests WHERE id = ? FOR UPDATE`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Request{}, models.ErrRequestNotFound
	}
	if err != nil {
		return models.Request{}, err
	}
	return req, nil
}

// GetPendingByAssetID returns pending requests referencing an asset, newest
// first. Kept for per-asset listings; approval itself is keyed by request id.
func (r *RequestRepository) GetPendingByAssetID(ctx context.Context, assetID string) ([]models.Request, error) {
	query := `SELECT` + requestColumns + ` FROM requests WHERE asset_id = ? AND request_status = 'pending' ORDER BY request_date DESC`
	return r.queryRequests(ctx, query, assetID)
}

// MarkApprovedTx transitions pending -> approved. The status predicate is part
// of the UPDATE, so a replayed approval cannot re-run the transition.
func (r *RequestRepository) MarkApprovedTx(ctx context.Context, tx *sql.Tx, id, hrEmail string) error {
	query := `
		UPDATE requests
		SET request_status = 'approved', approved_date = ?, processed_by = ?
		WHERE id = ? AND request_status = 'pending'
	`
	result, err := tx.ExecContext(ctx, query, time.Now(), hrEmail, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.terminalStateError(ctx, tx, id)
	}
	return nil
}

// MarkRejected transitions pending -> rejected, stamping the processing HR.
func (r *RequestRepository) MarkRejected(ctx context.Context, id, hrEmail string) error {
	query := `
		UPDATE requests
		SET request_status = 'rejected', approved_date = ?, processed_by = ?
		WHERE id = ? AND request_status = 'pending'
	`
	result, err := r.DB.ExecContext(ctx, query, time.Now(), hrEmail, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.terminalStateError(ctx, nil, id)
	}
	return nil
}

// terminalStateError explains why a conditional transition matched no rows.
func (r *RequestRepository) terminalStateError(ctx context.Context, tx *sql.Tx, id string) error {
	var status models.RequestStatus
	var err error
	if tx != nil {
		err = tx.QueryRowContext(ctx, `SELECT request_status FROM requests WHERE id = ?`, id).Scan(&status)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT request_status FROM requests WHERE id = ?`, id).Scan(&status)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrRequestNotFound
	}
	if err != nil {
		return err
	}
	switch status {
	case models.StatusApproved:
		return models.ErrRequestAlreadyApproved
	case models.StatusRejected:
		return models.ErrRequestAlreadyRejected
	}
	return models.ErrRequestNotFound
}

func (r *RequestRepository) GetRequestsByHREmail(ctx context.Context, hrEmail string) ([]models.Request, error) {
	query := `SELECT` + requestColumns + ` FROM requests WHERE hr_email = ? ORDER BY request_date DESC`
	return r.queryRequests(ctx, query, hrEmail)
}

func (r *RequestRepository) GetRequestsByRequester(ctx context.Context, email string) ([]models.Request, error) {
	query := `SELECT` + requestColumns + ` FROM requests WHERE requester_email = ? ORDER BY request_date DESC`
	return r.queryRequests(ctx, query, email)
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]models.Request, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
