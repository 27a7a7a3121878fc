package qlab

import "errors"

// Error classes for everything this package can reject. Failures wrap
// exactly one of these, so callers branch with errors.Is and still get
// the detailed message.
var (
	// ErrConfiguration covers symbolic names that cannot be resolved:
	// unknown gate tokens, unsupported molecule or preparation names,
	// two-qubit tokens bound on a single-qubit circuit.
	ErrConfiguration = errors.New("configuration error")

	// ErrIndexOutOfRange covers qubit indices and basis-state indices
	// outside the register, including duplicate control/target pairs.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidArgument covers non-positive shot counts, non-finite
	// angles and non-positive qubit counts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound covers lookups of unknown circuit ids.
	ErrNotFound = errors.New("not found")
)
