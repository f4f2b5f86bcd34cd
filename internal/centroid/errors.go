package centroid

import "errors"

// ErrConfiguration is returned when the reference center set cannot be used:
// it is empty or a center does not have exactly fingerprint.Length values.
// Errors returned by this package wrap it with the offending detail, so
// callers should test with errors.Is.
var ErrConfiguration = errors.New("invalid reference centers")
