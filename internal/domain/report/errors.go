package report

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found in report scope")
)
