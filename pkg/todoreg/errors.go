package todoreg

import "errors"

// Sentinel errors for registry operations. The message texts are part of
// the service contract: they are what wire callers see in the Err variant.
// In-process callers should branch with errors.Is, not string comparison.
var (
	// ErrNotFound indicates no item exists under the requested id.
	ErrNotFound = errors.New("not found")

	// ErrRegistryFull indicates every id in the 16-bit space is in use.
	ErrRegistryFull = errors.New("registry full")

	// ErrInvalidPage indicates a read_all page past the end of the data.
	ErrInvalidPage = errors.New("invalid page")

	// ErrRegistryClosed indicates the registry has been closed.
	ErrRegistryClosed = errors.New("registry closed")

	// ErrMethodNotFound indicates a dispatch target that was never
	// registered.
	ErrMethodNotFound = errors.New("method not found")
)
