package tzif

import (
	"errors"
	"fmt"
)

// validateDataBlock checks the cross-field invariants of a decoded block
// that the header alone cannot guarantee. All violations are reported.
func validateDataBlock(h Header, b DataBlock) error {
	var errs []error

	// Transition times
	for i := 1; i < len(b.TransitionTimes); i++ {
		if b.TransitionTimes[i] < b.TransitionTimes[i-1] {
			errs = append(errs, fmt.Errorf("%w: transition time[%d] = %d < transition time[%d] = %d",
				ErrUnsortedTransitions, i, b.TransitionTimes[i], i-1, b.TransitionTimes[i-1]))
			break
		}
	}

	// Transition types
	for i, typ := range b.TransitionTypes {
		if uint32(typ) >= h.Typecnt {
			errs = append(errs, fmt.Errorf("%w: transition type[%d] = %d, typecnt = %d", ErrIndexOutOfRange, i, typ, h.Typecnt))
		}
	}

	// Designation indices
	for i, r := range b.LocalTimeTypeRecords {
		if uint32(r.Idx) >= h.Charcnt {
			errs = append(errs, fmt.Errorf("%w: local time type record[%d] idx = %d, charcnt = %d", ErrIndexOutOfRange, i, r.Idx, h.Charcnt))
		}
	}

	return errors.Join(errs...)
}
