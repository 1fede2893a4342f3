package theme

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/icons"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/storage"
)

type fixedBattery int

func (b fixedBattery) Percentage() int { return int(b) }

type echoStrings struct{}

func (echoStrings) Tr(key i18n.Key) string { return "tr:" + string(key) }

type countingCovers struct {
	loads int
	err   error
}

func (c *countingCovers) LoadCover(string, int) (image.Image, error) {
	c.loads++
	if c.err != nil {
		return nil, c.err
	}
	return image.NewGray(image.Rect(0, 0, 60, 90)), nil
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	page := Paginate(7, 5, 120, 40)
	require.Equal(t, Page{ItemsPerPage: 3, PageCount: 3, Current: 1, Start: 3, End: 6}, page)

	last := Paginate(7, 6, 120, 40)
	assert.Equal(t, 2, last.Current)
	assert.Equal(t, 6, last.Start)
	assert.Equal(t, 7, last.End)

	assert.Equal(t, 0, Paginate(7, -1, 120, 40).Current, "negative selection shows the first page")
	assert.Equal(t, 2, Paginate(7, 99, 120, 40).Current, "selection past the end shows the last page")
	assert.Zero(t, Paginate(7, 0, 39, 40).ItemsPerPage, "no row fits")
	assert.Zero(t, Paginate(0, 0, 120, 40).ItemsPerPage)
}

func TestScrollBar(t *testing.T) {
	t.Parallel()

	const track = 120
	for current := 0; current < 3; current++ {
		page := Paginate(7, current*3, track, 40)
		thumb, ok := ScrollBar(track, 7, page)
		require.True(t, ok)
		assert.GreaterOrEqual(t, thumb.Height, 1)
		assert.GreaterOrEqual(t, thumb.Y, 0)
		assert.LessOrEqual(t, thumb.Y+thumb.Height, track, "page %d", current)
	}

	first, _ := ScrollBar(track, 7, Paginate(7, 0, track, 40))
	last, _ := ScrollBar(track, 7, Paginate(7, 6, track, 40))
	assert.Equal(t, 0, first.Y)
	assert.Equal(t, track, last.Y+last.Height)

	_, ok := ScrollBar(track, 3, Paginate(3, 0, track, 40))
	assert.False(t, ok, "a single page has no scroll bar")

	tiny, ok := ScrollBar(10, 1000, Paginate(1000, 0, 10, 5))
	require.True(t, ok)
	assert.Equal(t, 1, tiny.Height)
}

func TestCoverCrop(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, CoverCrop(100, 100, 50, 50), 1e-9)
	assert.InDelta(t, 0.5, CoverCrop(100, 100, 200, 100), 1e-9, "too wide crops width")
	assert.Less(t, CoverCrop(100, 100, 50, 100), 0.0, "too tall crops height")
	assert.Zero(t, CoverCrop(0, 100, 50, 100))
}

func TestDrawListPaginatesAndShowsScrollBar(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	s := &recorder{}
	rect := layout.R(0, 60, 480, 120)
	th.DrawList(s, rect, 7, 4, ListRows{Title: func(i int) string { return fmt.Sprintf("item %d", i) }})

	var titles []string
	for _, c := range s.only("text") {
		titles = append(titles, c.text)
	}
	require.Equal(t, []string{"item 3", "item 4", "item 5"}, titles)

	m := th.Metrics()
	scrollX := rect.Right() - m.ScrollBarRightOffset
	found := false
	for _, c := range s.only("line") {
		if c.x == scrollX && c.x2 == scrollX {
			found = true
		}
	}
	assert.True(t, found, "scroll track drawn")
}

func TestDrawListSinglePageHasNoScrollBar(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	s := &recorder{}
	rect := layout.R(0, 60, 480, 120)
	th.DrawList(s, rect, 2, 0, ListRows{Title: func(i int) string { return "row" }})

	assert.Empty(t, s.only("line"))
	assert.Empty(t, s.only("fill"))
	assert.Len(t, s.only("text"), 2)
}

func TestDrawListValueNeverOverlapsTitle(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	s := &recorder{}
	rect := layout.R(0, 0, 300, 40)
	rows := ListRows{
		Title: func(int) string { return strings.Repeat("long title ", 10) },
		Value: func(int) string { return "English" },
	}
	th.DrawList(s, rect, 1, 0, rows)

	texts := s.only("text")
	require.Len(t, texts, 2)
	title, value := texts[0], texts[1]
	require.Equal(t, "English", value.text)
	assert.True(t, strings.HasSuffix(title.text, "..."))
	assert.Less(t, title.x+s.TextWidth(render.FontUI10, title.text, render.Regular), value.x)
}

func TestDrawListHighlightedValueIsInverted(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	s := &recorder{}
	rows := ListRows{
		Title:          func(int) string { return "Language" },
		Value:          func(int) string { return "English" },
		HighlightValue: true,
	}
	th.DrawList(s, layout.R(0, 0, 300, 80), 2, 1, rows)

	var values []drawCall
	for _, c := range s.only("text") {
		if c.text == "English" {
			values = append(values, c)
		}
	}
	require.Len(t, values, 2)
	assert.True(t, values[0].black, "unselected value in ink")
	assert.False(t, values[1].black, "selected value in paper on a black band")
	assert.NotEmpty(t, s.only("fill"))
}

func TestDrawListWithoutRowsDrawsNothing(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	s := &recorder{}
	th.DrawList(s, layout.R(0, 0, 300, 30), 5, 0, ListRows{Title: func(int) string { return "x" }})
	assert.Empty(t, s.calls)
}

func diagonalLines(s *recorder) int {
	n := 0
	for _, c := range s.only("line") {
		if c.x != c.x2 && c.y != c.y2 {
			n++
		}
	}
	return n
}

func TestBatteryLowIndicator(t *testing.T) {
	t.Parallel()

	rect := layout.R(10, 0, 20, 12)

	low := &recorder{}
	NewCompact(Deps{Battery: fixedBattery(8)}).DrawBatteryLeft(low, rect, true)
	assert.Equal(t, 1, diagonalLines(low))

	ok := &recorder{}
	NewCompact(Deps{Battery: fixedBattery(10)}).DrawBatteryLeft(ok, rect, true)
	assert.Zero(t, diagonalLines(ok))

	var pct []string
	for _, c := range ok.only("text") {
		pct = append(pct, c.text)
	}
	assert.Equal(t, []string{"10%"}, pct)
}

func TestBatteryRightPercentageEndsLeftOfIcon(t *testing.T) {
	t.Parallel()

	s := &recorder{}
	rect := layout.R(400, 0, 20, 12)
	NewCompact(Deps{Battery: fixedBattery(55)}).DrawBatteryRight(s, rect, true)

	texts := s.only("text")
	require.Len(t, texts, 1)
	assert.Equal(t, rect.X-batteryPercentSpacing, texts[0].x+s.TextWidth(render.FontSmall, "55%", render.Regular))
}

type hiddenPercentage struct{}

func (hiddenPercentage) BatteryPercentageVisible() bool { return false }

func TestHeaderTitleLeavesRoomForBattery(t *testing.T) {
	t.Parallel()

	s := &recorder{}
	rect := layout.R(0, 0, 200, 28)
	th := NewCompact(Deps{Battery: fixedBattery(100)})
	th.DrawHeader(s, rect, strings.Repeat("W", 40), "")

	var title drawCall
	var pct drawCall
	for _, c := range s.only("text") {
		if strings.HasSuffix(c.text, "%") {
			pct = c
		} else {
			title = c
		}
	}
	require.NotEmpty(t, title.text)
	require.Equal(t, "100%", pct.text)
	assert.Less(t, title.x+s.TextWidth(render.FontUI10, title.text, render.Bold), pct.x)

	hidden := &recorder{}
	NewCompact(Deps{Preferences: hiddenPercentage{}}).DrawHeader(hidden, rect, "", "")
	texts := hidden.only("text")
	require.Len(t, texts, 1)
	assert.Equal(t, ProductName, texts[0].text)
}

func TestButtonHintsSkipEmptyLabelsAndRestoreOrientation(t *testing.T) {
	t.Parallel()

	s := &recorder{orientation: render.LandscapeClockwise}
	NewCompact(Deps{}).DrawButtonHints(s, "Back", "", "", "Next")

	assert.Len(t, s.only("rect"), 2)
	var labels []string
	for _, c := range s.only("text") {
		labels = append(labels, c.text)
	}
	assert.Equal(t, []string{"Back", "Next"}, labels)
	assert.Equal(t, render.LandscapeClockwise, s.orientation)
}

func TestSideButtonHintsAreRotated(t *testing.T) {
	t.Parallel()

	s := &recorder{}
	NewCompact(Deps{}).DrawSideButtonHints(s, "", "Down")
	rotated := s.only("rotated")
	require.Len(t, rotated, 1)
	assert.Equal(t, "Down", rotated[0].text)
	assert.Len(t, s.only("rect"), 1)
}

func TestRecentCoversDecodeOncePerActivation(t *testing.T) {
	t.Parallel()

	covers := &countingCovers{}
	th := NewCompact(Deps{Covers: covers})
	books := []RecentBook{
		{Title: "One", CoverPath: "/books/one.bmp"},
		{Title: "Two", CoverPath: "/books/two.bmp"},
		{Title: "Three", CoverPath: "/books/three.bmp"},
	}
	rect := layout.R(0, 28, 480, compactMetrics.HomeCoverTileHeight)
	s := &recorder{}
	cache := &CoverCache{}

	cache.BeginFrame(s)
	th.DrawRecentBookCover(s, rect, books, 0, cache)
	require.Equal(t, 3, covers.loads)
	assert.True(t, cache.Rendered)
	assert.True(t, cache.BufferStored)
	assert.Len(t, s.only("bitmap"), 3)

	s.reset()
	cache.BeginFrame(s)
	th.DrawRecentBookCover(s, rect, books, 2, cache)
	assert.Equal(t, 3, covers.loads, "second frame reuses the stored buffer")
	assert.True(t, cache.BufferRestored)
	assert.Empty(t, s.only("bitmap"))
	assert.Len(t, s.only("text"), 3, "titles are redrawn every frame")

	cache.Reset()
	s.reset()
	cache.BeginFrame(s)
	th.DrawRecentBookCover(s, rect, books, 0, cache)
	assert.Equal(t, 6, covers.loads, "a new activation decodes again")
}

func TestRecentCoversFallBackToPlaceholder(t *testing.T) {
	t.Parallel()

	for _, err := range []error{storage.ErrCoverMissing, errors.New("corrupt bmp")} {
		covers := &countingCovers{err: err}
		s := &recorder{}
		NewCompact(Deps{Covers: covers}).DrawRecentBookCover(s, layout.R(0, 0, 480, 276),
			[]RecentBook{{Title: "Broken", CoverPath: "/books/broken.bmp"}}, 0, &CoverCache{})

		assert.Empty(t, s.only("bitmap"))
		assert.NotEmpty(t, s.only("icon"), "placeholder icon for %v", err)
	}
}

func TestEmptyRecents(t *testing.T) {
	t.Parallel()

	s := &recorder{}
	NewCompact(Deps{Strings: echoStrings{}}).DrawRecentBookCover(s, layout.R(0, 0, 480, 276), nil, 0, &CoverCache{})

	var texts []string
	for _, c := range s.only("text") {
		texts = append(texts, c.text)
	}
	assert.Equal(t, []string{"tr:" + string(i18n.StrNoOpenBook), "tr:" + string(i18n.StrStartReading)}, texts)
	assert.False(t, s.stored)
}

func TestPopupAndProgressCommitModes(t *testing.T) {
	t.Parallel()

	panel := render.NewMemoryPanel()
	panel.Keep = 4
	gate := render.NewGate(render.NewCanvas(&render.Fonts{}, nil), panel, nil)
	th := NewCompact(Deps{})

	lock := gate.Acquire()
	popup := th.DrawPopup(lock.Surface(), "Updating")
	lock.Release()

	require.False(t, popup.Empty())
	commits := panel.Commits()
	require.Len(t, commits, 1)
	assert.Equal(t, render.FullRefresh, commits[0].Mode)

	lock = gate.Acquire()
	th.FillPopupProgress(lock.Surface(), popup, 50)
	lock.Release()

	commits = panel.Commits()
	require.Len(t, commits, 2)
	assert.Equal(t, render.FastRefresh, commits[1].Mode)
}

func TestKeyboardKeyInvertsWhenSelected(t *testing.T) {
	t.Parallel()

	th := NewCompact(Deps{})
	rect := layout.R(10, 10, 30, 30)

	plain := &recorder{}
	th.DrawKeyboardKey(plain, rect, "a", false)
	assert.Empty(t, plain.only("dither"))
	require.Len(t, plain.only("text"), 1)
	assert.True(t, plain.only("text")[0].black)

	selected := &recorder{}
	th.DrawKeyboardKey(selected, rect, "a", true)
	require.Len(t, selected.only("dither"), 1)
	assert.Equal(t, render.Black, selected.only("dither")[0].shade)
	assert.False(t, selected.only("text")[0].black)
}

func TestButtonMenuIcons(t *testing.T) {
	t.Parallel()

	s := &recorder{}
	labels := []string{"Browse", "Settings"}
	NewCompact(Deps{}).DrawButtonMenu(s, layout.R(0, 300, 480, 200), 2, 1,
		func(i int) string { return labels[i] },
		func(i int) icons.Icon { return []icons.Icon{icons.Folder, icons.None}[i] })

	assert.Len(t, s.only("icon"), 1, "unsupported icons are skipped")
	assert.Len(t, s.only("dither"), 1)
	assert.Len(t, s.only("text"), 2)
}
