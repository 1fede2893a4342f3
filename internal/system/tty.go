//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Active VT first, then tty0.
var consolePaths = []string{"/dev/tty", "/dev/tty0"}

func setConsoleMode(mode int) error {
	var lastErr error
	for _, p := range consolePaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range consolePaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}

// EnterGraphicsMode switches the console to KD_GRAPHICS and hides the cursor so
// the kernel console does not draw over the panel. The returned function
// restores text mode.
func EnterGraphicsMode(logger logging.Logger) (restore func()) {
	logger = logging.OrNop(logger)
	if err := setConsoleMode(kdGraphics); err != nil {
		logger.Errorf("tty", "KD_GRAPHICS failed: %v", err)
	} else {
		logger.Infof("tty", "KD_GRAPHICS set")
	}
	if err := writeVT("\x1b[?25l"); err != nil {
		logger.Errorf("tty", "hide cursor failed: %v", err)
	}

	return func() {
		if err := writeVT("\x1b[?25h"); err != nil {
			logger.Errorf("tty", "show cursor failed: %v", err)
		}
		if err := setConsoleMode(kdText); err != nil {
			logger.Errorf("tty", "KD_TEXT failed: %v", err)
		} else {
			logger.Infof("tty", "KD_TEXT set")
		}
	}
}
