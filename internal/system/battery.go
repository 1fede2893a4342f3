package system

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// SysfsBattery reads the charge from /sys/class/power_supply. A reading is
// reused for MaxAge.
type SysfsBattery struct {
	Glob   string
	MaxAge time.Duration

	mu     sync.Mutex
	value  int
	readAt time.Time
	now    func() time.Time
}

func NewSysfsBattery() *SysfsBattery {
	return &SysfsBattery{Glob: "/sys/class/power_supply/*/capacity", MaxAge: 30 * time.Second, now: time.Now}
}

// Percentage returns 0..100; 100 when no battery is found.
func (b *SysfsBattery) Percentage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now
	if b.now != nil {
		now = b.now
	}
	if !b.readAt.IsZero() && now().Sub(b.readAt) < b.MaxAge {
		return b.value
	}
	b.value = readCapacity(b.Glob)
	b.readAt = now()
	return b.value
}

func readCapacity(glob string) int {
	paths, _ := filepath.Glob(glob)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			continue
		}
		return min(max(v, 0), 100)
	}
	return 100
}

// FixedBattery always reports the same charge.
type FixedBattery int

func (f FixedBattery) Percentage() int { return int(f) }
