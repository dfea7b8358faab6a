package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Registries and stores return
// these (optionally wrapped) so the service layer can translate them into
// coded domain errors.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: no entity registered under the identifier
// - ErrConflict: identifier already maps to a different entity
// - ErrInvalidState: record in wrong state for the requested operation
//
// For validation diagnostics (malformed amounts, catalog misses), use the
// message-value results in internal/casefile/validate instead.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
