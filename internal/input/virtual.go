package input

import "sync"

// VirtualSource is a Source fed by software, used by the web remote and tests.
type VirtualSource struct {
	mu      sync.Mutex
	held    State
	latched State
}

func NewVirtualSource() *VirtualSource { return &VirtualSource{} }

// Tap presses and releases k. The next Poll reports it held, the one after released.
func (v *VirtualSource) Tap(k Key) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.latched = v.latched.With(k)
}

// Press holds k down until Release.
func (v *VirtualSource) Press(k Key) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.held = v.held.With(k)
	v.latched = v.latched.With(k)
}

func (v *VirtualSource) Release(k Key) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.held = v.held.Without(k)
}

func (v *VirtualSource) Poll() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.held | v.latched
	v.latched = 0
	return state
}

// MultiSource merges several sources.
type MultiSource []Source

func (m MultiSource) Poll() State {
	var state State
	for _, s := range m {
		if s != nil {
			state |= s.Poll()
		}
	}
	return state
}
