package request

import "errors"

// Request workflow errors
var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrAlreadyProcessed  = errors.New("request has already been processed at this stage")
	ErrOutOfTurn         = errors.New("request is not awaiting this approval stage")
	ErrInvalidSupervisor = errors.New("employee has no active supervisor linked")
)
