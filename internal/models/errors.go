package models

import (
	"errors"
)

var (
	ErrNoRecord       = errors.New("models: no matching record found")
	ErrDuplicateEmail = errors.New("models: duplicate email")
	ErrUserNotFound   = errors.New("models: user not found")
	ErrHRNotFound     = errors.New("models: hr account not found")

	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetOutOfStock    = errors.New("asset out of stock")
	ErrQuantityExceeded   = errors.New("available quantity exceeds product quantity")
	ErrRequestNotFound    = errors.New("request not found")
	ErrAssignmentNotFound = errors.New("assignment not found")

	ErrRequestAlreadyApproved = errors.New("request already approved")
	ErrRequestAlreadyRejected = errors.New("request already rejected")
	ErrCapacityReached        = errors.New("employee package limit reached")
	ErrNotRequestOwner        = errors.New("request does not belong to this hr")

	ErrAffiliationNotFound = errors.New("affiliation not found")
	ErrPackageNotFound     = errors.New("package not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	ErrInvalidToken = errors.New("invalid or expired token")
	ErrStoreTimeout = errors.New("store call timed out")
)
