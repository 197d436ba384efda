package core

import (
	"testing"
	"time"
)

func TestRuntimeConfigRate(t *testing.T) {
	tests := []struct {
		name     string
		tickRate int
		rate     int
		interval time.Duration
	}{
		{"configured", 10, 10, 100 * time.Millisecond},
		{"zero falls back", 0, DefaultTickRate, time.Second / DefaultTickRate},
		{"negative falls back", -5, DefaultTickRate, time.Second / DefaultTickRate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := RuntimeConfig{TickRate: tc.tickRate}
			if got := cfg.Rate(); got != tc.rate {
				t.Errorf("Rate() = %d, expected %d", got, tc.rate)
			}
			if got := cfg.Interval(); got != tc.interval {
				t.Errorf("Interval() = %v, expected %v", got, tc.interval)
			}
			if got := cfg.Ticks(3); got != 3*tc.rate {
				t.Errorf("Ticks(3) = %d, expected %d", got, 3*tc.rate)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ScreenW != 80 || cfg.ScreenH != 24 || cfg.TickRate != DefaultTickRate || cfg.Seed != 0 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}
