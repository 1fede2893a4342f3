package activity

import (
	"context"
	"errors"
	"time"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/render"
)

// ErrNoActivity is returned by Tick when the stack is empty.
var ErrNoActivity = errors.New("no active screen")

type transitionKind int

const (
	pushTransition transitionKind = iota
	backTransition
)

type transition struct {
	kind     transitionKind
	activity Activity
}

// Manager owns the activity stack. All of its methods except Exit must be
// called from the goroutine running Tick or Run.
type Manager struct {
	gate   *render.Gate
	source input.Source
	mapper *input.Mapper
	logger logging.Logger

	stack   []Activity
	pending []transition

	exitCh chan error
}

var _ Host = (*Manager)(nil)

func NewManager(gate *render.Gate, source input.Source, mapper *input.Mapper, logger logging.Logger) *Manager {
	if mapper == nil {
		mapper = input.NewMapper(input.LayoutBackConfirmLeftRight)
	}
	return &Manager{
		gate:   gate,
		source: source,
		mapper: mapper,
		logger: logging.OrNop(logger),
		exitCh: make(chan error, 1),
	}
}

func (m *Manager) Gate() *render.Gate   { return m.gate }
func (m *Manager) Input() *input.Mapper { return m.mapper }

// Top returns the active screen, or nil.
func (m *Manager) Top() Activity {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of stacked screens.
func (m *Manager) Depth() int { return len(m.stack) }

// Push enters a on top of the current screen once the current tick's input
// handling is done.
func (m *Manager) Push(a Activity) {
	m.pending = append(m.pending, transition{kind: pushTransition, activity: a})
}

// Back leaves the current screen; the previous one is entered again from scratch.
// Leaving the last screen exits the manager.
func (m *Manager) Back() {
	m.pending = append(m.pending, transition{kind: backTransition})
}

// Exit stops Run with err. Only the first call counts; it may be made from any goroutine.
func (m *Manager) Exit(err error) {
	select {
	case m.exitCh <- err:
	default:
	}
}

func (m *Manager) applyTransitions(ctx context.Context) {
	for len(m.pending) > 0 {
		t := m.pending[0]
		m.pending = m.pending[1:]

		if top := m.Top(); top != nil {
			if err := top.Stop(); err != nil {
				m.logger.Errorf("activity", "stop %s: %v", top.Name(), err)
			}
		}

		switch t.kind {
		case pushTransition:
			m.stack = append(m.stack, t.activity)
		case backTransition:
			if len(m.stack) > 0 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		}

		top := m.Top()
		if top == nil {
			m.logger.Infof("activity", "stack empty")
			m.Exit(nil)
			m.pending = nil
			return
		}
		m.logger.Infof("activity", "enter %s (depth %d)", top.Name(), len(m.stack))
		if err := top.Start(ctx); err != nil {
			m.logger.Errorf("activity", "start %s: %v", top.Name(), err)
			m.stack = m.stack[:len(m.stack)-1]
			prev := m.Top()
			if prev == nil || prev.Start(ctx) != nil {
				m.Exit(err)
				m.pending = nil
				return
			}
		}
	}
}

// Tick runs one scheduler step: input is polled and handled by the active
// screen, requested transitions are applied, then the active screen is
// rendered under the gate if it asked for a redraw.
func (m *Manager) Tick(ctx context.Context) error {
	m.applyTransitions(ctx)
	top := m.Top()
	if top == nil {
		return ErrNoActivity
	}

	var keys input.State
	if m.source != nil {
		keys = m.source.Poll()
	}
	m.mapper.Update(keys)
	top.Loop(ctx)

	m.applyTransitions(ctx)
	top = m.Top()
	if top == nil {
		return ErrNoActivity
	}
	if top.TakeUpdate() {
		m.render(top)
	}
	return nil
}

func (m *Manager) render(a Activity) {
	lock := m.gate.Acquire()
	defer lock.Release()
	a.Render(lock)
}

// Run ticks once immediately and then every interval, until ctx is done or
// Exit is called.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	defer m.stopAll()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	lastLog := time.Now()
	for {
		if err := m.Tick(ctx); err != nil && !errors.Is(err, ErrNoActivity) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-m.exitCh:
			return err
		case <-ticker.C:
			if time.Since(lastLog) > time.Minute {
				if top := m.Top(); top != nil {
					m.logger.Debugf("activity", "heartbeat, active=%s", top.Name())
				}
				lastLog = time.Now()
			}
		}
	}
}

func (m *Manager) stopAll() {
	if top := m.Top(); top != nil {
		if err := top.Stop(); err != nil {
			m.logger.Errorf("activity", "stop %s: %v", top.Name(), err)
		}
	}
	m.stack = nil
	m.pending = nil
}
