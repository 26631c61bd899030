package conversion

import "errors"

// ErrNonFinite indicates a conversion that produced NaN or an infinity.
var ErrNonFinite = errors.New("conversion result is not finite")
