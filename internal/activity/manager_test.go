package activity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/render"
)

type fakeActivity struct {
	Base
	name    string
	host    Host
	starts  int
	stops   int
	renders int
	events  *[]string
	onLoop  func()
	failing bool
}

func (f *fakeActivity) Name() string { return f.name }

func (f *fakeActivity) Start(context.Context) error {
	f.starts++
	*f.events = append(*f.events, "start:"+f.name)
	if f.failing {
		return errors.New("boom")
	}
	f.RequestUpdate()
	return nil
}

func (f *fakeActivity) Stop() error {
	f.stops++
	*f.events = append(*f.events, "stop:"+f.name)
	return nil
}

func (f *fakeActivity) Loop(context.Context) {
	*f.events = append(*f.events, "loop:"+f.name)
	if f.onLoop != nil {
		f.onLoop()
	}
}

func (f *fakeActivity) Render(lock *render.Lock) {
	f.renders++
	*f.events = append(*f.events, "render:"+f.name)
	lock.Surface().DisplayBuffer(render.FullRefresh)
}

func newTestManager(t *testing.T) (*Manager, *input.VirtualSource, *render.MemoryPanel) {
	t.Helper()
	panel := render.NewMemoryPanel()
	panel.Keep = 16
	gate := render.NewGate(render.NewCanvas(&render.Fonts{}, nil), panel, nil)
	src := input.NewVirtualSource()
	return NewManager(gate, src, nil, nil), src, panel
}

func TestTickRendersOnlyWhenDirty(t *testing.T) {
	t.Parallel()

	m, _, panel := newTestManager(t)
	var events []string
	home := &fakeActivity{name: "home", events: &events}
	m.Push(home)

	require.NoError(t, m.Tick(context.Background()))
	require.Equal(t, []string{"start:home", "loop:home", "render:home"}, events)
	require.Len(t, panel.Commits(), 1)

	require.NoError(t, m.Tick(context.Background()))
	require.Equal(t, 1, home.renders, "clean screen is not redrawn")
	require.Len(t, panel.Commits(), 1)
}

func TestTransitionsApplyAfterLoop(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	var events []string
	home := &fakeActivity{name: "home", events: &events}
	child := &fakeActivity{name: "child", events: &events}
	home.onLoop = func() {
		m.Push(child)
		*home.events = append(*home.events, "after-push")
	}
	m.Push(home)

	require.NoError(t, m.Tick(context.Background()))
	require.Equal(t, []string{
		"start:home", "loop:home", "after-push",
		"stop:home", "start:child", "render:child",
	}, events)
	require.Same(t, child, m.Top())
	require.Equal(t, 0, home.renders, "the screen being left is not drawn")
}

func TestBackReentersPreviousFresh(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	var events []string
	home := &fakeActivity{name: "home", events: &events}
	child := &fakeActivity{name: "child", events: &events}
	m.Push(home)
	m.Push(child)
	require.NoError(t, m.Tick(context.Background()))
	require.Equal(t, 2, m.Depth())

	child.onLoop = m.Back
	require.NoError(t, m.Tick(context.Background()))
	require.Same(t, home, m.Top())
	require.Equal(t, 2, home.starts)
	require.Equal(t, 1, child.stops)
}

func TestStartFailureReturnsToPrevious(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	var events []string
	home := &fakeActivity{name: "home", events: &events}
	broken := &fakeActivity{name: "broken", events: &events, failing: true}
	m.Push(home)
	require.NoError(t, m.Tick(context.Background()))

	m.Push(broken)
	require.NoError(t, m.Tick(context.Background()))
	require.Same(t, home, m.Top())
	require.Equal(t, 2, home.starts)
}

func TestRunExitsWhenLastScreenLeaves(t *testing.T) {
	t.Parallel()

	m, src, _ := newTestManager(t)
	var events []string
	only := &fakeActivity{name: "only", events: &events}
	only.onLoop = func() {
		if m.Input().WasPressed(input.Back) {
			m.Back()
		}
	}
	m.Push(only)
	src.Tap(input.Front1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Run(ctx, time.Millisecond))
	require.Nil(t, m.Top())
}

func TestExitStopsRun(t *testing.T) {
	t.Parallel()

	m, _, _ := newTestManager(t)
	var events []string
	m.Push(&fakeActivity{name: "home", events: &events})

	want := errors.New("shutdown")
	go m.Exit(want)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.ErrorIs(t, m.Run(ctx, time.Millisecond), want)
	require.Contains(t, events, "stop:home")
}
