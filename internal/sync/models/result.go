package models

// ErrorKind classifies why a sync run failed so the caller can show
// differentiated remediation text.
type ErrorKind string

const (
	// ErrKindConnection covers transport failures and the fetch deadline.
	ErrKindConnection ErrorKind = "connection_error"
	// ErrKindProviderAuth is a provider-reported 401/403 (bad or missing API key).
	ErrKindProviderAuth ErrorKind = "provider_auth_error"
	// ErrKindProviderNotFound is a provider-reported 404 (unknown event).
	ErrKindProviderNotFound ErrorKind = "provider_not_found"
	// ErrKindProvider is any other provider-reported failure.
	ErrKindProvider ErrorKind = "provider_error"
	// ErrKindMissingEventID means the provider response omitted the event id.
	ErrKindMissingEventID ErrorKind = "missing_event_id"
	// ErrKindRLS is a row-level security denial on a store write. It halts
	// the run: every later write would fail identically.
	ErrKindRLS ErrorKind = "rls_error"
)

// Stats counts what one sync run did. Writes that failed non-fatally are
// counted, not surfaced as errors.
type Stats struct {
	Orders            int `json:"orders"`
	CancelledOrders   int `json:"cancelled_orders"`
	AttendeesUpserted int `json:"attendees_upserted"`
	PetsReplaced      int `json:"pets_replaced"`
	SkippedNoEmail    int `json:"skipped_no_email"`
	WriteErrors       int `json:"write_errors"`
}

// Result is the single pass/fail verdict for a sync run. Regardless of
// outcome the caller should re-fetch persisted state: a halted run may have
// committed partial writes that the view needs to reflect.
type Result struct {
	OK      bool      `json:"ok"`
	Kind    ErrorKind `json:"error_kind,omitempty"`
	Message string    `json:"message,omitempty"`
	Stats   Stats     `json:"stats"`
}

// Failure builds a failed Result preserving the stats gathered so far.
func Failure(kind ErrorKind, message string, stats Stats) Result {
	return Result{OK: false, Kind: kind, Message: message, Stats: stats}
}
