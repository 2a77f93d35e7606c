package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and clients return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrConflict: write conflicts with an existing row
// - ErrPermissionDenied: the store rejected the write at the policy level
//   (row-level security); every subsequent write in the same run fails the
//   same way, so callers should stop rather than retry
// - ErrUnavailable: service or resource temporarily unavailable
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("unavailable")
)
