package qualify

import (
	"testing"

	"pgregory.net/rapid"
)

func TestClassify_BandBoundaries(t *testing.T) {
	e := NewEngine(Config{})

	cases := []struct {
		budget int64
		want   Band
	}{
		{0, BandEntry},
		{649_999, BandEntry},
		{650_000, BandMid},
		{900_000, BandMid},
		{1_100_000, BandMid},
		{1_100_001, BandTop},
		{5_000_000, BandTop},
	}
	for _, tc := range cases {
		band, text := e.Classify(tc.budget)
		if band != tc.want {
			t.Fatalf("budget %d: got band %q, want %q", tc.budget, band, tc.want)
		}
		if text == "" {
			t.Fatalf("budget %d: empty recommendation", tc.budget)
		}
	}
}

// TestClassify_PartitionsBudgets checks that every non-negative budget lands
// in exactly one band and that the mapping is deterministic.
func TestClassify_PartitionsBudgets(t *testing.T) {
	e := NewEngine(Config{})

	rapid.Check(t, func(rt *rapid.T) {
		budget := rapid.Int64Range(0, 10_000_000).Draw(rt, "budget")

		band, text := e.Classify(budget)

		switch {
		case budget < 650_000:
			if band != BandEntry {
				rt.Fatalf("budget %d: got %q, want entry", budget, band)
			}
		case budget <= 1_100_000:
			if band != BandMid {
				rt.Fatalf("budget %d: got %q, want mid", budget, band)
			}
		default:
			if band != BandTop {
				rt.Fatalf("budget %d: got %q, want top", budget, band)
			}
		}

		// Pure function: a second call must agree.
		band2, text2 := e.Classify(budget)
		if band2 != band || text2 != text {
			rt.Fatalf("budget %d: classification is not deterministic", budget)
		}
	})
}

func TestClassify_ThresholdsAreConfigurable(t *testing.T) {
	e := NewEngine(Config{EntryMax: 100, MidMax: 200})

	if band, _ := e.Classify(99); band != BandEntry {
		t.Fatalf("expected entry below custom threshold")
	}
	if band, _ := e.Classify(150); band != BandMid {
		t.Fatalf("expected mid between custom thresholds")
	}
	if band, _ := e.Classify(201); band != BandTop {
		t.Fatalf("expected top above custom threshold")
	}
}
