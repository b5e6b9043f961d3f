package reporting

import "time"

// Common filtering inputs.

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// LeadsSummaryRequest requests the aggregated intake funnel over a range.

type LeadsSummaryRequest struct {
	Range TimeRange `json:"range"`
}

// LeadsSummary is the operator-facing funnel view: how many calls landed,
// where they qualified, how bookings and opt-outs broke down.

type LeadsSummary struct {
	TotalLeads int `json:"total_leads"`

	EntryBand int `json:"entry_band"`
	MidBand   int `json:"mid_band"`
	TopBand   int `json:"top_band"`

	BookingsConfirmed int `json:"bookings_confirmed"`
	BookingsFailed    int `json:"bookings_failed"`

	DisplaySuiteVisits int `json:"display_suite_visits"`
	VideoCalls         int `json:"video_calls"`

	OptOuts int `json:"opt_outs"`
}
