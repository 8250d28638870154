package chain

import "time"

// ClockConfig describes how wall time maps onto block height.
type ClockConfig struct {
	Genesis       time.Time
	BlockInterval time.Duration
}

// Clock is the block-height surrogate the registry stamps deeds with.
type Clock struct {
	cfg ClockConfig
}

func NewClock(cfg ClockConfig) Clock {
	if cfg.BlockInterval <= 0 {
		cfg.BlockInterval = 10 * time.Minute
	}
	if cfg.Genesis.IsZero() {
		cfg.Genesis = time.Unix(0, 0)
	}
	return Clock{cfg: cfg}
}

func DefaultClock() Clock {
	return NewClock(ClockConfig{})
}

// HeightAt returns the number of whole blocks produced since genesis.
// Times before genesis map to height 0.
func (c Clock) HeightAt(now time.Time) uint64 {
	elapsed := now.Sub(c.cfg.Genesis)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / c.cfg.BlockInterval)
}

// Source binds the clock to a time function, giving the registry its
// BlockHeight dependency.
func (c Clock) Source(now func() time.Time) func() uint64 {
	if now == nil {
		now = time.Now
	}
	return func() uint64 {
		return c.HeightAt(now())
	}
}
