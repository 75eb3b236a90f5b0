package query

import (
	"errors"
	"fmt"
)

// ValidationError reports a request parameter that could not be turned into
// a usable filter, sort or bound. It is never retried.
type ValidationError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// DataAccessError wraps a failure of the storage collaborator during one of
// the read operations (count, find, aggregate, facets).
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsDataAccess(err error) bool {
	var de *DataAccessError
	return errors.As(err, &de)
}
