package geometry

import "errors"

// ErrMissingBound is returned when an open-ended range is used where both bounds are required.
var ErrMissingBound = errors.New("range is missing a bound")
