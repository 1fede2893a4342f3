//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Linux input-event-codes.h
const (
	evKey = 0x01

	keyEsc       = 1
	keyBackspace = 14
	keyEnter     = 28
	keyUp        = 103
	keyPageUp    = 104
	keyLeft      = 105
	keyRight     = 106
	keyDown      = 108
	keyPageDown  = 109
	keyPower     = 116
)

var evdevKeys = map[uint16]Key{
	keyEsc:       Front1,
	keyBackspace: Front1,
	keyEnter:     Front2,
	keyLeft:      Front3,
	keyRight:     Front4,
	keyUp:        SideUp,
	keyPageUp:    SideUp,
	keyDown:      SideDown,
	keyPageDown:  SideDown,
	keyPower:     Power,
}

// EvdevSource reads key events from Linux evdev devices.
type EvdevSource struct {
	mu      sync.Mutex
	held    State
	latched State
	logger  logging.Logger
	wg      sync.WaitGroup
}

// OpenEvdev starts one reader per device matching glob (usually
// /dev/input/event*). Readers stop when ctx is done.
func OpenEvdev(ctx context.Context, glob string, logger logging.Logger) (*EvdevSource, error) {
	paths, err := filepath.Glob(glob)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", glob, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no evdev devices match %s", glob)
	}
	src := &EvdevSource{logger: logging.OrNop(logger)}
	var (
		opened  int
		lastErr error
	)
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", path, err)
			src.logger.Errorf("input", "%v", lastErr)
			continue
		}
		opened++
		src.wg.Add(1)
		go src.read(ctx, path, fd)
	}
	if opened == 0 {
		return nil, fmt.Errorf("no evdev device could be opened: %w", lastErr)
	}
	src.logger.Infof("input", "reading %d of %d evdev devices", opened, len(paths))
	return src, nil
}

// Wait blocks until all readers have exited.
func (e *EvdevSource) Wait() { e.wg.Wait() }

func (e *EvdevSource) Poll() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	state := e.held | e.latched
	e.latched = 0
	return state
}

func (e *EvdevSource) apply(code uint16, value int32) {
	key, ok := evdevKeys[code]
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	switch value {
	case 1:
		e.held = e.held.With(key)
		e.latched = e.latched.With(key)
	case 0:
		e.held = e.held.Without(key)
	}
}

func (e *EvdevSource) read(ctx context.Context, path string, fd int) {
	defer e.wg.Done()
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, 64*eventSize)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			e.logger.Errorf("input", "poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			e.logger.Errorf("input", "read %s: %v", path, err)
			return
		}

		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			if typ != evKey {
				continue
			}
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			e.apply(code, value)
		}
	}
}
