package lead

import "time"

// Lead is an immutable, append-only record of one admitted call.
//
// Invariants:
// - Leads are never updated or deleted.
// - One lead per admitted call, including opt-out calls.
// - Timestamps are stored in the sales team's zone so the operator view
//   matches what the caller was told.
//
// Storage recommendation (Postgres):
// - Table leads with an INSERT-only policy.
// - Qualification and booking snapshots as JSONB; they are read back
//   whole, never queried field-by-field.

type Lead struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	CallerPhone string `json:"caller_phone" db:"caller_phone"`
	CallerName  string `json:"caller_name,omitempty" db:"caller_name"`
	CallerEmail string `json:"caller_email,omitempty" db:"caller_email"`

	// Summary is the reply text the caller heard.
	Summary string `json:"summary" db:"summary"`

	Qualification Qualification `json:"qualification" db:"qualification"`
	Booking       BookingRef    `json:"booking" db:"booking"`

	// ComplianceFlags carries markers like "unsubscribe_request".
	ComplianceFlags []string `json:"compliance_flags,omitempty" db:"compliance_flags"`

	TranscriptURL string `json:"transcript_url,omitempty" db:"transcript_url"`
	RecordingURL  string `json:"recording_url,omitempty" db:"recording_url"`
}

// Qualification snapshots what the caller said and which band they fell in.
type Qualification struct {
	Budget        int64    `json:"budget"`
	Beds          int      `json:"beds,omitempty"`
	Parking       int      `json:"parking,omitempty"`
	OwnerOccupier bool     `json:"owner_occupier"`
	Timeframe     string   `json:"timeframe,omitempty"`
	FinanceStatus string   `json:"finance_status,omitempty"`
	Suburbs       []string `json:"suburbs,omitempty"`
	Band          string   `json:"band"`
}

// BookingRef snapshots the scheduling outcome. A failed booking still
// carries its id so ops can reconcile later.
type BookingRef struct {
	BookingID string `json:"booking_id,omitempty"`
	Slot      string `json:"slot,omitempty"`
	Mode      string `json:"mode,omitempty"`
	Status    string `json:"status,omitempty"`
}

// FlagUnsubscribe marks a caller opt-out request on the lead.
const FlagUnsubscribe = "unsubscribe_request"
