package chain

import (
	"testing"
	"time"
)

func TestClockHeightAt(t *testing.T) {
	genesis := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewClock(ClockConfig{
		Genesis:       genesis,
		BlockInterval: 10 * time.Minute,
	})

	if h := clock.HeightAt(genesis); h != 0 {
		t.Fatalf("expected height 0 at genesis, got %d", h)
	}
	if h := clock.HeightAt(genesis.Add(9 * time.Minute)); h != 0 {
		t.Fatalf("expected height 0 before first block, got %d", h)
	}
	if h := clock.HeightAt(genesis.Add(25 * time.Minute)); h != 2 {
		t.Fatalf("expected height 2 at +25m, got %d", h)
	}
	if h := clock.HeightAt(genesis.Add(-time.Hour)); h != 0 {
		t.Fatalf("expected height 0 before genesis, got %d", h)
	}
}

func TestClockSource(t *testing.T) {
	genesis := time.Unix(0, 0)
	clock := NewClock(ClockConfig{Genesis: genesis, BlockInterval: time.Second})
	now := genesis.Add(42 * time.Second)
	height := clock.Source(func() time.Time { return now })
	if got := height(); got != 42 {
		t.Fatalf("expected height 42, got %d", got)
	}
}

func TestDefaultClockUsesTenMinuteBlocks(t *testing.T) {
	clock := DefaultClock()
	if h := clock.HeightAt(time.Unix(0, 0).Add(time.Hour)); h != 6 {
		t.Fatalf("expected 6 blocks per hour, got %d", h)
	}
}
