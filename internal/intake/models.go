package intake

import "intake-platform/internal/schedule"

// CallRequest is the caller-supplied payload for one interaction. Identity
// fields are opaque strings; beds/parking/timeframe bounds are enforced at
// the HTTP boundary, not here.
type CallRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`

	Message string `json:"message"`

	Budget           int64    `json:"budget" binding:"min=0"`
	Beds             int      `json:"beds"`
	Parking          int      `json:"parking"`
	Timeframe        string   `json:"timeframe"`
	OwnerOccupier    bool     `json:"owner_occ"`
	FinanceStatus    string   `json:"finance_status"`
	PreferredSuburbs []string `json:"preferred_suburbs"`

	// PreferredSlot is an optional RFC3339 timestamp with offset.
	PreferredSlot string `json:"preferred_slot"`

	// Opaque reference URIs supplied by the media layer.
	TranscriptURL string `json:"transcript_url"`
	RecordingURL  string `json:"recording_url"`
}

// CallResponse is returned for every admitted call. Partial failures show
// up as degraded fields, never as a missing response.
type CallResponse struct {
	Response string `json:"response"`

	// Booking is zero-valued for opt-out calls.
	Booking schedule.Booking `json:"booking"`

	ComplianceFlags []string `json:"compliance_flags"`

	// LeadLogged is false only when persistence failed after its retry;
	// LeadWarning then explains what happened.
	LeadLogged  bool   `json:"lead_logged"`
	LeadWarning string `json:"lead_warning,omitempty"`

	// AudioB64 is the synthesized MP3, base64-encoded. AudioError is set
	// instead when the whole synthesis chain failed.
	AudioB64      string `json:"audio_b64,omitempty"`
	AudioProvider string `json:"audio_provider,omitempty"`
	AudioError    string `json:"audio_error,omitempty"`
}
