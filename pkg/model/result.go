// Package model defines the core data structures of the coverage engine:
// parsed records, the in-memory coverage database, result codes, and
// per-run statistics.
package model

// ResultCode identifies the outcome of a parse operation. The numeric
// values are part of the external contract and must not be reordered.
type ResultCode int32

const (
	Success ResultCode = iota
	FileNotFound
	FileAccessDenied
	ParseFailed
	InvalidFormat
	OutOfMemory
	InvalidParameter
)

// String returns the short identifier for the result code.
func (c ResultCode) String() string {
	switch c {
	case Success:
		return "success"
	case FileNotFound:
		return "file_not_found"
	case FileAccessDenied:
		return "file_access_denied"
	case ParseFailed:
		return "parse_failed"
	case InvalidFormat:
		return "invalid_format"
	case OutOfMemory:
		return "out_of_memory"
	case InvalidParameter:
		return "invalid_parameter"
	default:
		return "unknown"
	}
}

// Message returns the human-readable description for the result code.
func (c ResultCode) Message() string {
	switch c {
	case Success:
		return "operation completed successfully"
	case FileNotFound:
		return "file does not exist"
	case FileAccessDenied:
		return "file access denied"
	case ParseFailed:
		return "parsing failed"
	case InvalidFormat:
		return "invalid file format"
	case OutOfMemory:
		return "out of memory"
	case InvalidParameter:
		return "invalid parameter"
	default:
		return "unknown error"
	}
}

// OK reports whether the code represents a successful outcome.
func (c ResultCode) OK() bool {
	return c == Success
}
