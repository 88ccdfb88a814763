package cloud

import "errors"

// ErrInstanceNotFound is returned when no instance matches the requested id,
// or when the account has no instances at all. It is fatal to a resolution
// and is never retried.
var ErrInstanceNotFound = errors.New("no matching instance found")

// ErrMissingConfiguration is returned at startup when neither explicit
// configuration nor the environment yields usable credentials or a region.
var ErrMissingConfiguration = errors.New("missing required configuration")
