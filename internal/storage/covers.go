// Package storage reads book files and their cover thumbnails from disk.
package storage

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
)

var (
	ErrCoverMissing = errors.New("cover missing")
	ErrCoverDecode  = errors.New("cover decode failed")
)

// HeightPlaceholder in a cover path is replaced by the requested thumbnail height.
const HeightPlaceholder = "[HEIGHT]"

// MaxCoverPixels rejects covers whose header claims an unreasonable size.
const MaxCoverPixels = 2048 * 2048

// Covers loads BMP cover thumbnails.
type Covers struct{}

// CoverPath resolves the placeholder in coverPath for the given height.
func CoverPath(coverPath string, height int) string {
	return strings.ReplaceAll(coverPath, HeightPlaceholder, strconv.Itoa(height))
}

func (Covers) LoadCover(coverPath string, height int) (image.Image, error) {
	path := CoverPath(coverPath, height)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCoverMissing, path)
		}
		return nil, fmt.Errorf("open cover %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := bmp.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s header: %v", ErrCoverDecode, path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxCoverPixels {
		return nil, fmt.Errorf("%w: %s is %dx%d", ErrCoverDecode, path, cfg.Width, cfg.Height)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind cover %s: %w", path, err)
	}
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCoverDecode, path, err)
	}
	return img, nil
}
