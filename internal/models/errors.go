package models

import "errors"

// Custom errors
var (
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("record not found")
	ErrSimulationFailed = errors.New("simulation failed")
)

// Error kinds surfaced at the system boundary
const (
	KindNotFound        = "not_found"
	KindInvalidArgument = "invalid_argument"
	KindInternal        = "internal"
)

// ErrorKind classifies err into one of the boundary error kinds
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrGameNotFound), errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
