package scitex

import "errors"

// Error taxonomy. Every error is synchronous and caller-correctable:
// uploads either complete fully or are rejected before GPU state is
// mutated, and nothing here is worth retrying.
var (
	// ErrInvalidRangeSpec is returned when a display range is neither the
	// "auto" sentinel nor a pair of numeric bounds.
	ErrInvalidRangeSpec = errors.New("scitex: clim must be \"auto\" or two numeric bounds")

	// ErrUnsupportedFormat is returned when an element type has no
	// corresponding GPU storage format.
	ErrUnsupportedFormat = errors.New("scitex: no storage format for element type")

	// ErrFormatLocked is returned when an upload requires a storage format
	// change but automatic format selection was not enabled at construction.
	ErrFormatLocked = errors.New("scitex: format change required but automatic format selection was not enabled")

	// ErrFormatMismatch is returned by the pre-upload check when incoming
	// data would force a format change on a format-locked texture.
	ErrFormatMismatch = errors.New("scitex: data would cause a format change, allowed only with the \"auto\" format hint")

	// ErrInvalidOperation is returned when an in-place rescale is requested
	// on a non-floating buffer, which cannot be rewritten without
	// reallocation.
	ErrInvalidOperation = errors.New("scitex: cannot rescale a non-floating buffer in place")

	// ErrRangeUnresolved is returned when a normalized clim is requested
	// while the display range is still the "auto" sentinel, before any data
	// upload has materialized it.
	ErrRangeUnresolved = errors.New("scitex: display range not resolved, upload data first")
)
