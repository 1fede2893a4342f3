package render

import (
	"image"
	"sync"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Gate serializes access to the single display buffer. A holder draws through
// the Surface of its Lock; the frame is committed to the panel only when the
// Lock is released.
type Gate struct {
	mu     sync.Mutex
	canvas *Canvas
	panel  Panel
	logger logging.Logger

	lastMu    sync.RWMutex
	last      *image.Gray
	lastMode  RefreshMode
	commitErr error
}

func NewGate(canvas *Canvas, panel Panel, logger logging.Logger) *Gate {
	return &Gate{canvas: canvas, panel: panel, logger: logging.OrNop(logger)}
}

// Acquire blocks until the display buffer is free and returns the lock holding it.
func (g *Gate) Acquire() *Lock {
	g.mu.Lock()
	lock := &Lock{gate: g}
	lock.surface = &lockedSurface{Canvas: g.canvas, lock: lock}
	return lock
}

// Snapshot returns a copy of the last committed frame and its refresh mode.
func (g *Gate) Snapshot() (*image.Gray, RefreshMode, bool) {
	g.lastMu.RLock()
	defer g.lastMu.RUnlock()
	if g.last == nil {
		return nil, FullRefresh, false
	}
	return cloneGray(g.last), g.lastMode, true
}

// LastCommitError reports the error of the most recent panel commit.
func (g *Gate) LastCommitError() error {
	g.lastMu.RLock()
	defer g.lastMu.RUnlock()
	return g.commitErr
}

func (g *Gate) commit(mode RefreshMode) {
	frame := g.canvas.Frame()
	var err error
	if g.panel != nil {
		err = g.panel.Commit(frame, mode)
	}
	if err != nil {
		g.logger.Errorf("gate", "panel commit (%s) failed: %v", mode, err)
	}
	g.lastMu.Lock()
	g.last = frame
	g.lastMode = mode
	g.commitErr = err
	g.lastMu.Unlock()
}

// Lock is the scoped permission to mutate the display buffer.
type Lock struct {
	gate     *Gate
	surface  *lockedSurface
	released bool
	pending  bool
	mode     RefreshMode
}

// Surface returns the drawable surface for this lock.
func (l *Lock) Surface() Surface { return l.surface }

// Release gives the display buffer back. If a commit was requested while the
// lock was held, the frame is committed now, with a full refresh if any
// request asked for one. Release is idempotent.
func (l *Lock) Release() {
	if l.released {
		return
	}
	l.released = true
	if l.pending {
		l.gate.commit(l.mode)
	}
	l.gate.mu.Unlock()
}

// Held reports whether the lock has not been released yet.
func (l *Lock) Held() bool { return !l.released }

func (l *Lock) request(mode RefreshMode) {
	if l.released {
		l.gate.logger.Errorf("gate", "display %s refresh dropped: %v", mode, ErrLockReleased)
		return
	}
	if !l.pending || mode == FullRefresh {
		l.mode = mode
	}
	l.pending = true
}

type lockedSurface struct {
	*Canvas
	lock *Lock
}

func (s *lockedSurface) DisplayBuffer(mode RefreshMode) { s.lock.request(mode) }
