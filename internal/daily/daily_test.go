package daily

import (
	"testing"
	"time"
)

func TestDateKey_UTC(t *testing.T) {
	loc := time.FixedZone("east", 10*60*60)
	ts := time.Date(2026, 3, 2, 5, 0, 0, 0, loc) // 2026-03-01 19:00 UTC
	if got := DateKey(ts); got != "2026-03-01" {
		t.Errorf("DateKey = %q", got)
	}
}

func TestSeed_StablePerDay(t *testing.T) {
	morning := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)
	next := time.Date(2026, 10, 20, 1, 0, 0, 0, time.UTC)

	if Seed(morning, "s") != Seed(evening, "s") {
		t.Error("seed changed within a day")
	}
	if Seed(morning, "s") == Seed(next, "s") {
		t.Error("seed did not change across days")
	}
	if Seed(morning, "s") == Seed(morning, "other") {
		t.Error("salt has no effect")
	}
	if Seed(morning, "s") < 0 {
		t.Error("seed must be non-negative")
	}
}
