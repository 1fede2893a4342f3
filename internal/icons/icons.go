// Package icons resolves abstract icon identities to rasterized bitmaps.
package icons

import (
	"image"
	"sync"

	"golang.org/x/image/vector"
)

// Icon is an abstract icon identity.
type Icon int

const (
	None Icon = iota
	Folder
	Text
	Image
	Book
	File
	Recent
	Settings
	Transfer
	Library
	Wifi
	Hotspot
	Cover
)

var names = map[Icon]string{
	None: "none", Folder: "folder", Text: "text", Image: "image", Book: "book", File: "file",
	Recent: "recent", Settings: "settings", Transfer: "transfer", Library: "library",
	Wifi: "wifi", Hotspot: "hotspot", Cover: "cover",
}

func (i Icon) String() string {
	if name, ok := names[i]; ok {
		return name
	}
	return "unknown"
}

// Which icons exist at which pixel size.
var supported = map[int]map[Icon]bool{
	24: {Folder: true, Text: true, Image: true, Book: true, File: true},
	32: {Folder: true, Book: true, Recent: true, Settings: true, Transfer: true,
		Library: true, Wifi: true, Hotspot: true, Cover: true},
}

// Supported reports whether icon has a bitmap at size.
func Supported(icon Icon, size int) bool { return supported[size][icon] }

type cacheKey struct {
	icon Icon
	size int
}

// Resolver rasterizes icons on first use and caches the masks.
type Resolver struct {
	mu    sync.Mutex
	cache map[cacheKey]*image.Alpha
}

func NewResolver() *Resolver {
	return &Resolver{cache: make(map[cacheKey]*image.Alpha)}
}

// Resolve returns the alpha mask for icon at size, or nil when the
// combination is unknown.
func (r *Resolver) Resolve(icon Icon, size int) image.Image {
	if !Supported(icon, size) {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := cacheKey{icon, size}
	if mask, ok := r.cache[key]; ok {
		return mask
	}
	mask := rasterize(shapes[icon], size)
	r.cache[key] = mask
	return mask
}

func rasterize(paths []path, size int) *image.Alpha {
	z := vector.NewRasterizer(size, size)
	s := float32(size)
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		z.MoveTo(p[0].x*s, p[0].y*s)
		for _, pt := range p[1:] {
			z.LineTo(pt.x*s, pt.y*s)
		}
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, size, size))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}
