package input

// NextIndex advances index by one with wraparound. It returns 0 when total <= 0.
func NextIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	return (index + 1) % total
}

// PreviousIndex steps index back by one with wraparound. It returns 0 when total <= 0.
func PreviousIndex(index, total int) int {
	if total <= 0 {
		return 0
	}
	return (index - 1 + total) % total
}

// Navigator dispatches list navigation on button release.
type Navigator struct {
	mapper *Mapper
}

func NewNavigator(mapper *Mapper) Navigator { return Navigator{mapper: mapper} }

// OnNextRelease calls fn when Down or Right was released this tick.
func (n Navigator) OnNextRelease(fn func()) bool {
	if n.mapper.WasReleased(Down) || n.mapper.WasReleased(Right) {
		fn()
		return true
	}
	return false
}

// OnPreviousRelease calls fn when Up or Left was released this tick.
func (n Navigator) OnPreviousRelease(fn func()) bool {
	if n.mapper.WasReleased(Up) || n.mapper.WasReleased(Left) {
		fn()
		return true
	}
	return false
}
