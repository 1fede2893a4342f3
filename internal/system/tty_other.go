//go:build !linux

package system

import "github.com/rook-computer/inkpoint/internal/logging"

func EnterGraphicsMode(logger logging.Logger) (restore func()) {
	logging.OrNop(logger).Infof("tty", "console graphics mode not supported on this platform")
	return func() {}
}
