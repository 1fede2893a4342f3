package web

import (
	"context"
	"errors"
	"image"
	"io"

	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/recent"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/storage"
)

// BookStorage abstracts the library directory.
type BookStorage interface {
	List() ([]storage.File, error)
	Path(name string) (string, error)
	Save(name string, body io.Reader, size int64) error
	Delete(name string) error
}

// FrameSource hands out the last frame committed to the panel.
type FrameSource interface {
	Snapshot() (*image.Gray, render.RefreshMode, bool)
}

// KeyTapper injects key presses, typically an input.VirtualSource.
type KeyTapper interface {
	Tap(k input.Key)
}

// RecentBooks lists the recently opened books.
type RecentBooks interface {
	List(ctx context.Context, limit int) ([]recent.Book, error)
}

type APIV1Deps struct {
	Books  BookStorage
	Frames FrameSource
	Keys   KeyTapper
	Recent RecentBooks

	// Layout resolves logical button names to keys; the default layout when nil.
	Layout func() input.Layout
	// LibraryChanged is called after every successful upload or delete.
	LibraryChanged func()
	// MaxUploadBytes bounds a single upload; DefaultMaxUploadBytes when <= 0.
	MaxUploadBytes int64

	Logger logging.Logger
}

// DefaultMaxUploadBytes applies when APIV1Deps.MaxUploadBytes is unset.
const DefaultMaxUploadBytes = 512 << 20

var errNotConfigured = errors.New("not configured")

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Books == nil {
		out.Books = NoopBookStorage{}
	}
	if out.Layout == nil {
		out.Layout = func() input.Layout { return input.LayoutBackConfirmLeftRight }
	}
	if out.LibraryChanged == nil {
		out.LibraryChanged = func() {}
	}
	if out.MaxUploadBytes <= 0 {
		out.MaxUploadBytes = DefaultMaxUploadBytes
	}
	out.Logger = logging.OrNop(out.Logger)
	return out
}

// NoopBookStorage rejects every operation.
type NoopBookStorage struct{}

func (NoopBookStorage) List() ([]storage.File, error)       { return nil, errNotConfigured }
func (NoopBookStorage) Path(string) (string, error)         { return "", errNotConfigured }
func (NoopBookStorage) Save(string, io.Reader, int64) error { return errNotConfigured }
func (NoopBookStorage) Delete(string) error                 { return errNotConfigured }
