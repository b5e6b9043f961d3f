package schedule

import (
	"fmt"
	"strings"
	"time"
)

// SalesZone is the fixed sales-office offset (UTC+10). Booking ids, lead
// timestamps and the display-suite hour check all live in this zone.
var SalesZone = time.FixedZone("AEST", 10*60*60)

const bookingIDPrefix = "RS-"

// SlotUnavailable is the slot sentinel recorded when resolution failed.
const SlotUnavailable = "unavailable"

type Mode string

const (
	ModeVideo        Mode = "video"
	ModeDisplaySuite Mode = "display-suite"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Booking is the immutable outcome of one scheduling attempt. It is created
// once per call and embedded into the lead record as-is.
type Booking struct {
	BookingID string `json:"booking_id"`
	Slot      string `json:"slot"`
	Mode      Mode   `json:"mode,omitempty"`
	Status    Status `json:"status"`
	Message   string `json:"message"`
}

func (b Booking) Confirmed() bool { return b.Status == StatusConfirmed }

// Scheduler resolves a slot from the static catalog and derives the meeting
// mode from the slot's local wall-clock hour. It never fabricates times
// outside the catalog beyond honoring an explicit caller preference.
type Scheduler struct {
	catalog  Catalog
	inPerson map[int]struct{}
}

// NewScheduler builds a scheduler over an immutable catalog. inPersonHours
// are the local hours held at the display suite; everything else is video.
func NewScheduler(catalog Catalog, inPersonHours []int) *Scheduler {
	set := make(map[int]struct{}, len(inPersonHours))
	for _, h := range inPersonHours {
		set[h] = struct{}{}
	}
	return &Scheduler{catalog: catalog, inPerson: set}
}

// Schedule picks the caller's preferred slot when present, else the first
// catalog entry, and builds the booking record.
//
// A malformed preferred slot does not abort the call: the booking comes back
// with Status failed and an explanatory message, and the pipeline continues.
func (s *Scheduler) Schedule(preferredSlot string, now time.Time) Booking {
	id := newBookingID(now)

	slot := strings.TrimSpace(preferredSlot)
	if slot == "" {
		slot = s.catalog.First()
	}

	t, err := time.Parse(time.RFC3339, slot)
	if err != nil {
		return Booking{
			BookingID: id,
			Slot:      SlotUnavailable,
			Status:    StatusFailed,
			Message:   fmt.Sprintf("The booking system could not read the requested time %q; our team will follow up to confirm a slot.", slot),
		}
	}

	mode := s.modeFor(t)
	return Booking{
		BookingID: id,
		Slot:      slot,
		Mode:      mode,
		Status:    StatusConfirmed,
		Message:   fmt.Sprintf("Booked %s (%s)", slot, mode),
	}
}

// modeFor checks the parsed local hour against the in-person set. The hour
// comes from the timestamp structure, never from matching text, so a "10"
// elsewhere in the string can't flip the mode.
func (s *Scheduler) modeFor(t time.Time) Mode {
	if _, ok := s.inPerson[t.In(SalesZone).Hour()]; ok {
		return ModeDisplaySuite
	}
	return ModeVideo
}

// newBookingID derives the id from the current time in the sales zone.
// Two bookings completing within the same second collide; that window is a
// known limitation of the id scheme, and the lead row's own uuid key keeps
// persisted records distinct regardless.
func newBookingID(now time.Time) string {
	return bookingIDPrefix + now.In(SalesZone).Format("20060102-150405")
}
