// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Storage sentinels. The deck store surfaces these to its caller unchanged;
// everything else the persistence layer absorbs and logs.
var (
	// ErrQuotaExceeded indicates durable storage is full. Wrapped with the
	// in-memory card count so the message tells the user what to delete.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrStorageUnavailable indicates storage cannot be used at all this
	// session; the in-memory collection keeps working without persistence.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
