package render

import (
	"bytes"
	"image"
	"image/draw"
	"sync"

	fb "github.com/gonutz/framebuffer"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/inkpoint/internal/logging"
)

// Panel receives committed frames.
type Panel interface {
	Commit(frame *image.Gray, mode RefreshMode) error
	Close() error
}

// FramebufferPanel blits committed frames to a Linux framebuffer device.
type FramebufferPanel struct {
	dev    *fb.Device
	target draw.Image
	logger logging.Logger

	// staging holds the last frame scaled to the target size; prev is the
	// one before it, so fast commits only rewrite what changed.
	staging *image.Gray
	prev    *image.Gray
	primed  bool
}

// OpenFramebufferPanel opens the framebuffer device at path (usually /dev/fb0).
func OpenFramebufferPanel(path string, logger logging.Logger) (*FramebufferPanel, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)
	bounds := dev.Bounds()
	logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	return &FramebufferPanel{dev: dev, target: dev, logger: logger}, nil
}

// Commit scales the frame to the device size once, then writes it out. A
// full refresh rewrites the whole device; a fast one only the box around the
// pixels that changed since the previous commit.
func (p *FramebufferPanel) Commit(frame *image.Gray, mode RefreshMode) error {
	if p.target == nil {
		return nil
	}
	bounds := p.target.Bounds()
	if p.staging == nil || p.staging.Bounds().Size() != bounds.Size() {
		p.staging = image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		p.prev = image.NewGray(p.staging.Bounds())
		p.primed = false
	}
	p.staging, p.prev = p.prev, p.staging
	if frame.Bounds().Size() == p.staging.Bounds().Size() {
		draw.Draw(p.staging, p.staging.Bounds(), frame, frame.Bounds().Min, draw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(p.staging, p.staging.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	}

	dirty := p.staging.Bounds()
	if mode == FastRefresh && p.primed {
		dirty = changedRect(p.prev, p.staging)
	}
	if !dirty.Empty() {
		draw.Draw(p.target, dirty.Add(bounds.Min), p.staging, dirty.Min, draw.Src)
	}
	p.primed = true
	p.logger.Debugf("fb", "commit %s refresh, %dx%d written", mode, dirty.Dx(), dirty.Dy())
	return nil
}

// changedRect bounds the pixels that differ between two same-sized frames.
func changedRect(a, b *image.Gray) image.Rectangle {
	bounds := b.Bounds()
	out := image.Rectangle{}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		rowA := a.Pix[a.PixOffset(bounds.Min.X, y):a.PixOffset(bounds.Max.X, y)]
		rowB := b.Pix[b.PixOffset(bounds.Min.X, y):b.PixOffset(bounds.Max.X, y)]
		if bytes.Equal(rowA, rowB) {
			continue
		}
		left, right := 0, len(rowB)-1
		for rowA[left] == rowB[left] {
			left++
		}
		for rowA[right] == rowB[right] {
			right--
		}
		out = out.Union(image.Rect(bounds.Min.X+left, y, bounds.Min.X+right+1, y+1))
	}
	return out
}

func (p *FramebufferPanel) Close() error {
	if p.dev != nil {
		p.dev.Close()
	}
	return nil
}

// Commit records one frame delivered to a MemoryPanel.
type Commit struct {
	Mode  RefreshMode
	Frame *image.Gray
}

// MemoryPanel keeps committed frames in memory. Used by the simulator and snapshot tool.
type MemoryPanel struct {
	mu      sync.Mutex
	commits []Commit
	// Keep bounds the retained history; 0 keeps only the latest frame.
	Keep int
}

func NewMemoryPanel() *MemoryPanel { return &MemoryPanel{} }

func (p *MemoryPanel) Commit(frame *image.Gray, mode RefreshMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commits = append(p.commits, Commit{Mode: mode, Frame: cloneGray(frame)})
	keep := p.Keep
	if keep <= 0 {
		keep = 1
	}
	if len(p.commits) > keep {
		p.commits = append(p.commits[:0], p.commits[len(p.commits)-keep:]...)
	}
	return nil
}

func (p *MemoryPanel) Close() error { return nil }

// Last returns the most recent commit, if any.
func (p *MemoryPanel) Last() (Commit, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.commits) == 0 {
		return Commit{}, false
	}
	return p.commits[len(p.commits)-1], true
}

// Commits returns the retained history, oldest first.
func (p *MemoryPanel) Commits() []Commit {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Commit, len(p.commits))
	copy(out, p.commits)
	return out
}

func cloneGray(src *image.Gray) *image.Gray {
	out := image.NewGray(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}
