//go:build !linux

package input

import (
	"context"
	"errors"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// EvdevSource is only available on Linux.
type EvdevSource struct{}

func OpenEvdev(context.Context, string, logging.Logger) (*EvdevSource, error) {
	return nil, errors.New("evdev input requires linux")
}

func (*EvdevSource) Wait()       {}
func (*EvdevSource) Poll() State { return 0 }
