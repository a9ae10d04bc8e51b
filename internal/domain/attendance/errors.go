package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotAssigned        = errors.New("employee is not assigned to this supervisor")

	ErrModificationNotFound         = errors.New("modification request not found")
	ErrModificationAlreadyProcessed = errors.New("modification request has already been processed")
)
