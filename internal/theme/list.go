package theme

// Page describes the visible slice of a paginated list.
type Page struct {
	ItemsPerPage int
	PageCount    int
	Current      int
	// Start and End bound the visible indices: [Start, End).
	Start int
	End   int
}

// Paginate splits itemCount rows of rowHeight into pages of areaHeight and
// returns the page containing selectedIndex. A negative selection shows the
// first page. ItemsPerPage is zero when not even one row fits.
func Paginate(itemCount, selectedIndex, areaHeight, rowHeight int) Page {
	if rowHeight <= 0 || areaHeight < rowHeight || itemCount <= 0 {
		return Page{}
	}
	perPage := areaHeight / rowHeight
	page := Page{
		ItemsPerPage: perPage,
		PageCount:    (itemCount + perPage - 1) / perPage,
	}
	if selectedIndex < 0 {
		selectedIndex = 0
	}
	if selectedIndex >= itemCount {
		selectedIndex = itemCount - 1
	}
	page.Current = selectedIndex / perPage
	page.Start = page.Current * perPage
	page.End = min(page.Start+perPage, itemCount)
	return page
}

// ScrollThumb is the scroll-bar thumb, relative to the top of its track.
type ScrollThumb struct {
	Y      int
	Height int
}

// ScrollBar sizes the thumb for page within a track of trackHeight. The
// thumb height is trackHeight×ItemsPerPage÷itemCount (at least one pixel) and
// its offset steps linearly through the unused track, one step per page.
// ok is false for a single page: no scroll bar is drawn then.
func ScrollBar(trackHeight, itemCount int, page Page) (thumb ScrollThumb, ok bool) {
	if page.PageCount <= 1 || itemCount <= 0 || trackHeight <= 0 {
		return ScrollThumb{}, false
	}
	height := trackHeight * page.ItemsPerPage / itemCount
	if height < 1 {
		height = 1
	}
	if height > trackHeight {
		height = trackHeight
	}
	y := (trackHeight - height) * page.Current / (page.PageCount - 1)
	return ScrollThumb{Y: y, Height: height}, true
}

// CoverCrop returns the fraction of a cover to crop so that a
// coverWidth×coverHeight image fills a tileWidth×tileHeight box without
// distortion: 1 − tileAspect/coverAspect. Positive values crop width, negative
// values mean the cover is too tall and height has to go instead.
func CoverCrop(tileWidth, tileHeight, coverWidth, coverHeight int) float64 {
	if tileWidth <= 0 || tileHeight <= 0 || coverWidth <= 0 || coverHeight <= 0 {
		return 0
	}
	coverAspect := float64(coverWidth) / float64(coverHeight)
	tileAspect := float64(tileWidth) / float64(tileHeight)
	return 1 - tileAspect/coverAspect
}
