package parser

import "errors"

var (
	// ErrUnsupportedFormat is returned when no parser is registered for
	// the requested format.
	ErrUnsupportedFormat = errors.New("unsupported report format")

	// ErrNilDatabase is returned when a nil database is supplied.
	ErrNilDatabase = errors.New("nil coverage database")
)
