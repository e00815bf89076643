package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, draft models.RegisterUser) (models.User, error) {
	email := draft.ResolveEmail()

	var exists int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&exists)
	if err != nil {
		return models.User{}, err
	}
	if exists > 0 {
		return models.User{}, models.ErrDuplicateEmail
	}

	user := models.User{
		Email:        email,
		Role:         draft.Role,
		Name:         draft.Name,
		ProfileImage: draft.ProfileImage,
		CompanyName:  draft.CompanyName,
		CompanyLogo:  draft.CompanyLogo,
		CreatedAt:    time.Now(),
	}
	if draft.Role == models.RoleHR {
		user.PackageLimit = models.DefaultPackageLimit
		user.CurrentEmployees = 0
		user.Subscription = models.DefaultSubscription
	}

	query := `
		INSERT INTO users
			(email, role, name, profile_image, company_name, company_logo,
			 package_limit, current_employees, subscription, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`
	_, err = r.DB.ExecContext(ctx, query,
		user.Email, user.Role, user.Name, user.ProfileImage, user.CompanyName, user.CompanyLogo,
		user.PackageLimit, user.CurrentEmployees, user.Subscription, user.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.User{}, models.ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT email, role, name, profile_image, company_name, company_logo,
		       package_limit, current_employees, subscription, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.Email, &u.Role, &u.Name, &u.ProfileImage, &u.CompanyName, &u.CompanyLogo,
		&u.PackageLimit, &u.CurrentEmployees, &u.Subscription, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetHRByEmail resolves an account and requires the hr role.
func (r *UserRepository) GetHRByEmail(ctx context.Context, email string) (models.User, error) {
	u, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if u.Role != models.RoleHR {
		return models.User{}, models.ErrHRNotFound
	}
	return u, nil
}

// GetHRForApprovalTx reads the HR account inside the approval transaction,
// locking the row so concurrent approvals for the same HR serialize on the
// capacity counter.
func (r *UserRepository) GetHRForApprovalTx(ctx context.Context, tx *sql.Tx, email string) (models.User, error) {
	query := `
		SELECT email, role, name, profile_image, company_name, company_logo,
		       package_limit, current_employees, subscription, created_at, updated_at
		FROM users
		WHERE email = ? AND role = 'hr'
		FOR UPDATE
	`
	var u models.User
	err := tx.QueryRowContext(ctx, query, email).Scan(
		&u.Email, &u.Role, &u.Name, &u.ProfileImage, &u.CompanyName, &u.CompanyLogo,
		&u.PackageLimit, &u.CurrentEmployees, &u.Subscription, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrHRNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// IncrementEmployeeCountTx bumps current_employees only while it is below the
// package limit. Zero affected rows means the capacity gate closed.
func (r *UserRepository) IncrementEmployeeCountTx(ctx context.Context, tx *sql.Tx, hrEmail string) error {
	query := `
		UPDATE users
		SET current_employees = current_employees + 1, updated_at = ?
		WHERE email = ? AND role = 'hr' AND current_employees < package_limit
	`
	result, err := tx.ExecContext(ctx, query, time.Now(), hrEmail)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrCapacityReached
	}
	return nil
}

// DecrementEmployeeCount is the symmetric counterpart used when an affiliation
// is revoked. Floor-guarded so retries cannot drive the counter negative.
func (r *UserRepository) DecrementEmployeeCount(ctx context.Context, hrEmail string) error {
	query := `
		UPDATE users
		SET current_employees = current_employees - 1, updated_at = ?
		WHERE email = ? AND role = 'hr' AND current_employees > 0
	`
	_, err := r.DB.ExecContext(ctx, query, time.Now(), hrEmail)
	return err
}

// ApplySubscriptionUpgrade sets the subscription fields absolutely. Replayed
// payment callbacks apply the same values again, which is a no-op.
func (r *UserRepository) ApplySubscriptionUpgrade(ctx context.Context, hrEmail string, employeeLimit int, plan string) error {
	query := `
		UPDATE users
		SET package_limit = ?, subscription = ?, updated_at = ?
		WHERE email = ? AND role = 'hr'
	`
	result, err := r.DB.ExecContext(ctx, query, employeeLimit, plan, time.Now(), hrEmail)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Replays with identical values also report zero affected rows on
		// MySQL, so double check the account actually exists.
		var count int
		if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ? AND role = 'hr'`, hrEmail).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return models.ErrHRNotFound
		}
	}
	return nil
}
