// Public domain.

package lcdata

import (
	"errors"
	"fmt"
)

// ErrValidation marks input that cannot be processed: a malformed isdiffpos
// token, an empty group, records of the wrong group.
var ErrValidation = errors.New("validation error")

// ErrArithmetic marks a floating point fault inside the correction formula.
var ErrArithmetic = errors.New("arithmetic fault")

// GroupError reports the failure of one group's computation.
//
// FID is zero when the whole object failed.
type GroupError struct {
	OID string
	FID int
	Err error
}

func (e *GroupError) Error() string {
	if e.FID == 0 {
		return fmt.Sprintf("object %s: %v", e.OID, e.Err)
	}
	return fmt.Sprintf("object %s band %d: %v", e.OID, e.FID, e.Err)
}

func (e *GroupError) Unwrap() error { return e.Err }

// Validationf formats a validation error.
func Validationf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, a...))
}
