package lead

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"intake-platform/internal/schedule"
)

var testNow = time.Date(2025, 9, 20, 14, 30, 5, 0, time.UTC)

func newTestService(repo Repository) *Service {
	s := NewService(repo)
	s.clock = func() time.Time { return testNow }
	return s
}

func sampleLead() Lead {
	return Lead{
		CallerPhone: "+61400000001",
		CallerName:  "Dana",
		Summary:     "Based on your budget, I recommend: 1-bed, parking optional.",
		Qualification: Qualification{
			Budget:        640_000,
			Beds:          1,
			OwnerOccupier: true,
			Timeframe:     "3m",
			FinanceStatus: "pre-approved",
			Suburbs:       []string{"Riverstone"},
			Band:          "entry",
		},
		Booking: BookingRef{
			BookingID: "RS-20250921-003005",
			Slot:      "2025-09-22T10:00:00+10:00",
			Mode:      "display-suite",
			Status:    "confirmed",
		},
	}
}

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	got, err := s.Record(context.Background(), sampleLead())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("lead id must be assigned")
	}
	if !got.CreatedAt.Equal(testNow) {
		t.Fatalf("created_at = %v, want clock time", got.CreatedAt)
	}
	if zone, _ := got.CreatedAt.Zone(); zone != "AEST" {
		t.Fatalf("created_at zone = %q, want the sales zone", zone)
	}

	stored := repo.Leads()
	if len(stored) != 1 {
		t.Fatalf("stored %d leads, want 1", len(stored))
	}
}

func TestRecord_Validation(t *testing.T) {
	s := newTestService(NewMemoryRepo())

	noPhone := sampleLead()
	noPhone.CallerPhone = ""
	if _, err := s.Record(context.Background(), noPhone); !errors.Is(err, ErrInvalidLead) {
		t.Fatalf("missing phone: got %v, want ErrInvalidLead", err)
	}

	noSummary := sampleLead()
	noSummary.Summary = ""
	if _, err := s.Record(context.Background(), noSummary); !errors.Is(err, ErrInvalidLead) {
		t.Fatalf("missing summary: got %v, want ErrInvalidLead", err)
	}
}

func TestRecord_RetriesOnceThenSucceeds(t *testing.T) {
	repo := NewMemoryRepo()
	repo.FailAppends(1, errors.New("connection reset"))
	s := newTestService(repo)

	if _, err := s.Record(context.Background(), sampleLead()); err != nil {
		t.Fatalf("record should succeed on the retry: %v", err)
	}
	if len(repo.Leads()) != 1 {
		t.Fatalf("expected exactly one stored lead after retry")
	}
}

func TestRecord_GivesUpAfterSecondFailure(t *testing.T) {
	repo := NewMemoryRepo()
	cause := errors.New("connection reset")
	repo.FailAppends(2, cause)
	s := newTestService(repo)

	if _, err := s.Record(context.Background(), sampleLead()); !errors.Is(err, cause) {
		t.Fatalf("got %v, want the final append error", err)
	}
	if len(repo.Leads()) != 0 {
		t.Fatalf("no lead should be stored after two failures")
	}
}

func TestRecord_RoundTripPreservesSnapshots(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	in := sampleLead()
	in.ComplianceFlags = []string{FlagUnsubscribe}
	if _, err := s.Record(context.Background(), in); err != nil {
		t.Fatalf("record: %v", err)
	}

	got := repo.Leads()[0]
	if got.Qualification.Band != "entry" {
		t.Fatalf("band = %q, want entry", got.Qualification.Band)
	}
	if got.Qualification.Budget != 640_000 {
		t.Fatalf("budget = %d, want 640000", got.Qualification.Budget)
	}
	if got.ComplianceFlags[0] != FlagUnsubscribe {
		t.Fatalf("flags = %v", got.ComplianceFlags)
	}
	if ok, _ := regexp.MatchString(`^RS-\d{8}-\d{6}$`, got.Booking.BookingID); !ok {
		t.Fatalf("booking id %q lost its shape", got.Booking.BookingID)
	}
}

func TestListRecent_NewestFirstAndCapped(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	for i := 0; i < 3; i++ {
		l := sampleLead()
		l.CreatedAt = testNow.Add(time.Duration(i) * time.Minute).In(schedule.SalesZone)
		if _, err := s.Record(context.Background(), l); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	got, err := s.ListRecent(context.Background(), 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2", len(got))
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("leads not sorted newest-first")
	}
}

func TestListBetween_HalfOpenRange(t *testing.T) {
	repo := NewMemoryRepo()
	s := newTestService(repo)

	times := []time.Time{testNow, testNow.Add(time.Hour), testNow.Add(2 * time.Hour)}
	for _, ts := range times {
		l := sampleLead()
		l.CreatedAt = ts
		if _, err := s.Record(context.Background(), l); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	got, err := s.ListBetween(context.Background(), testNow, testNow.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d leads, want 2 (range end excluded)", len(got))
	}

	if _, err := s.ListBetween(context.Background(), testNow, testNow); err == nil {
		t.Fatalf("empty range must be rejected")
	}
}
