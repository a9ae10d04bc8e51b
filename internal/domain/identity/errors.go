package identity

import "errors"

// Identity domain errors
var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrIdentityInactive = errors.New("identity is inactive")
	ErrEmailExists      = errors.New("email already registered")
	ErrEmpIDExists      = errors.New("employee id already registered")
	ErrNotASupervisor   = errors.New("linked identity is not an active supervisor")
)
