package qualify

// Engine maps a caller's budget to a recommendation band.
//
// Contract:
//   - Pure: same budget in, same recommendation out. No clock, no I/O.
//   - The two thresholds partition the non-negative integers into three bands
//     with no gap or overlap; thresholds are configuration, not code.
type Engine struct {
	cfg Config
}

// Config carries the band thresholds. EntryMax is the last budget inside the
// mid band's lower boundary exclusive sense: budget < EntryMax is entry tier,
// EntryMax <= budget <= MidMax is mid tier, budget > MidMax is top tier.
type Config struct {
	EntryMax int64
	MidMax   int64
}

func (c Config) withDefaults() Config {
	out := c
	if out.EntryMax <= 0 {
		out.EntryMax = 650_000
	}
	if out.MidMax <= out.EntryMax {
		out.MidMax = 1_100_000
	}
	return out
}

// Band names the recommendation tier; the full text is what callers hear.
type Band string

const (
	BandEntry Band = "entry"
	BandMid   Band = "mid"
	BandTop   Band = "top"
)

const (
	recommendationEntry = "1-bed, parking optional"
	recommendationMid   = "1- or 2-bed, confirm beds/parking/timeline"
	recommendationTop   = "Include 3-bed, confirm two car spaces"
)

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Classify maps a budget in whole currency units to the band tag (for
// reporting) and the recommendation text callers hear.
func (e *Engine) Classify(budget int64) (Band, string) {
	switch {
	case budget < e.cfg.EntryMax:
		return BandEntry, recommendationEntry
	case budget <= e.cfg.MidMax:
		return BandMid, recommendationMid
	default:
		return BandTop, recommendationTop
	}
}
