package tablelayout

import "errors"

// Sentinel errors for layout operations.
var (
	ErrEmptyTable           = errors.New("table has no rows")
	ErrMeasurement          = errors.New("text measurement failed")
	ErrInvalidConfiguration = errors.New("invalid layout configuration")
	ErrUnknownTable         = errors.New("unknown table identifier")
	ErrManagerClosed        = errors.New("layout manager is closed")
)
