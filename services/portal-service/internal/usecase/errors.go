package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrCredential             = errors.New("credential rejected")
	ErrFederatedAuth          = errors.New("federated sign-in failed")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrSubmissionFailed       = errors.New("application could not be submitted")
	ErrSubmissionInProgress   = errors.New("an identical application is already being submitted")
	ErrForbidden              = errors.New("forbidden")
	ErrContactFailed          = errors.New("message could not be sent")
	ErrNotFound               = errors.New("not found")
)

// Detailed variants keep errors.Is(err, ErrCredential) and friends true.
var (
	ErrEmailAlreadyInUse  = fmt.Errorf("%w: email already in use", ErrCredential)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least 6 characters", ErrCredential)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrCredential)

	ErrPopupFailed                          = fmt.Errorf("%w: sign-in popup did not complete", ErrFederatedAuth)
	ErrAccountExistsWithDifferentCredential = fmt.Errorf(
		"%w: an account already exists with the same email but a different sign-in method",
		ErrFederatedAuth,
	)
	ErrSessionRevoked = fmt.Errorf("%w: session has ended", ErrAuthenticationRequired)
)
