// Package input turns physical key state into logical, edge-triggered buttons.
package input

// Key is a physical key on the device.
type Key int

const (
	Front1 Key = iota
	Front2
	Front3
	Front4
	SideUp
	SideDown
	Power
	keyCount
)

var keyNames = [...]string{"front1", "front2", "front3", "front4", "side-up", "side-down", "power"}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// ParseKey accepts the names returned by Key.String.
func ParseKey(name string) (Key, bool) {
	for i, n := range keyNames {
		if n == name {
			return Key(i), true
		}
	}
	return 0, false
}

// State is the set of keys held down at one instant.
type State uint16

func (s State) Has(k Key) bool      { return s&(1<<k) != 0 }
func (s State) With(k Key) State    { return s | 1<<k }
func (s State) Without(k Key) State { return s &^ (1 << k) }

// Source reports key state once per tick. A press that began and ended
// between two polls is still reported as held by the first of them.
type Source interface {
	Poll() State
}
