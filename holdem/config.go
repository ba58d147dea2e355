package holdem

import "fmt"

type Config struct {
	// Blinds / Ante
	SmallBlind int64
	BigBlind   int64
	Ante       int64

	// RNG seed (0 => time-based)
	Seed int64
}

func (c Config) validate() error {
	if c.SmallBlind < 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("invalid blinds: sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.Ante < 0 {
		return fmt.Errorf("Ante must be >= 0")
	}
	return nil
}
