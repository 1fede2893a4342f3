package theme

import (
	"errors"
	"fmt"

	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/icons"
	"github.com/rook-computer/inkpoint/internal/logging"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/storage"
)

const (
	batteryPercentSpacing = 4
	hPaddingInSelection   = 6
	topHintButtonY        = 345
	popupMarginX          = 16
	popupMarginY          = 12
	popupY                = 132
	popupOutline          = 2
	popupBarHeight        = 4
	maxSubtitleWidth      = 100
	maxListValueWidth     = 200
	mainMenuIconSize      = 32
	listIconSize          = 24
	coverIconSize         = 32
	hintButtonWidth       = 80
	sideHintButtonHeight  = 78
	sideHintGap           = 5
	emptyRecentsPadding   = 48
	lowBatteryPercent     = 10
)

var hintButtonX = [4]int{58, 146, 254, 342}

// Deps are the read-only collaborators of a theme.
type Deps struct {
	Icons       IconResolver
	Battery     Battery
	Strings     Translator
	Covers      CoverLoader
	Preferences Preferences
	Logger      logging.Logger
}

// Compact is the dense theme for small portrait panels.
type Compact struct {
	icons  IconResolver
	power  Battery
	tr     Translator
	covers CoverLoader
	prefs  Preferences
	logger logging.Logger
}

var _ Theme = (*Compact)(nil)

func NewCompact(deps Deps) *Compact {
	if deps.Icons == nil {
		deps.Icons = icons.NewResolver()
	}
	return &Compact{
		icons:  deps.Icons,
		power:  deps.Battery,
		tr:     deps.Strings,
		covers: deps.Covers,
		prefs:  deps.Preferences,
		logger: logging.OrNop(deps.Logger),
	}
}

func (t *Compact) Metrics() Metrics { return compactMetrics }

func (t *Compact) batteryPercentage() int {
	if t.power == nil {
		return 100
	}
	return min(max(t.power.Percentage(), 0), 100)
}

func (t *Compact) text(key i18n.Key) string {
	if t.tr == nil {
		return string(key)
	}
	return t.tr.Tr(key)
}

func (t *Compact) drawBatteryIcon(s render.Surface, rect layout.Rect, percentage int) {
	x := rect.X
	// Aligns the outline with the small font's ascender.
	y := rect.Y + 6
	w, h := rect.Width, rect.Height
	t.logger.Debugf("theme-compact", "battery icon x=%d y=%d w=%d h=%d pct=%d", x, y, w, h, percentage)

	s.DrawLine(x+1, y, x+w-3, y, 1, true)
	s.DrawLine(x+1, y+h-1, x+w-3, y+h-1, 1, true)
	s.DrawLine(x, y+1, x, y+h-2, 1, true)
	s.DrawLine(x+w-2, y+1, x+w-2, y+h-2, 1, true)
	s.DrawPixel(x+w-1, y+3, true)
	s.DrawPixel(x+w-1, y+h-4, true)
	s.DrawLine(x+w-1, y+4, x+w-1, y+h-5, 1, true)

	s.FillRect(x+2, y+2, (w-4)*percentage/100, h-4, true)

	if percentage < lowBatteryPercent {
		s.DrawLine(x, y+h, x+w-2, y, 1, true)
	}
}

// drawBatteryText draws "NN%" with its left edge at x, or its right edge at x when right is set.
func (t *Compact) drawBatteryText(s render.Surface, x, y, percentage int, right bool) int {
	label := fmt.Sprintf("%d%%", percentage)
	width := s.TextWidth(render.FontSmall, label, render.Regular)
	if right {
		x -= width
	}
	// Clear first so a shorter value leaves no ghost digits.
	s.FillRect(x, y, width, s.TextHeight(render.FontSmall), false)
	s.DrawText(render.FontSmall, x, y, label, true, render.Regular)
	return width
}

func (t *Compact) DrawBatteryLeft(s render.Surface, rect layout.Rect, showPercentage bool) {
	percentage := t.batteryPercentage()
	t.drawBatteryIcon(s, rect, percentage)
	if showPercentage {
		t.drawBatteryText(s, rect.X+batteryPercentSpacing+compactMetrics.BatteryWidth, rect.Y, percentage, false)
	}
}

func (t *Compact) DrawBatteryRight(s render.Surface, rect layout.Rect, showPercentage bool) {
	t.drawBatteryRight(s, rect, showPercentage)
}

// drawBatteryRight returns the left edge of everything it drew.
func (t *Compact) drawBatteryRight(s render.Surface, rect layout.Rect, showPercentage bool) int {
	percentage := t.batteryPercentage()
	t.drawBatteryIcon(s, rect, percentage)
	if !showPercentage {
		return rect.X
	}
	textX := rect.X - batteryPercentSpacing
	return textX - t.drawBatteryText(s, textX, rect.Y, percentage, true)
}

func (t *Compact) DrawHeader(s render.Surface, rect layout.Rect, title, subtitle string) {
	m := compactMetrics
	t.logger.Debugf("theme-compact", "header x=%d y=%d w=%d h=%d", rect.X, rect.Y, rect.Width, rect.Height)
	s.FillRect(rect.X, rect.Y, rect.Width, rect.Height, false)

	showPercentage := t.prefs == nil || t.prefs.BatteryPercentageVisible()
	batteryRect := layout.R(rect.Right()-batteryPercentSpacing-m.BatteryWidth, rect.Y+m.TopPadding, m.BatteryWidth, m.BatteryHeight)
	batteryLeft := t.drawBatteryRight(s, batteryRect, showPercentage)

	titleX := rect.X + m.ContentSidePadding
	maxTitleWidth := batteryLeft - m.ContentSidePadding - titleX
	if subtitle != "" {
		maxTitleWidth -= maxSubtitleWidth
	}
	if title == "" {
		title = ProductName
	}
	t.logger.Debugf("theme-compact", "header title=%q budget=%d", title, maxTitleWidth)
	s.DrawText(render.FontUI10, titleX, rect.Y+m.TopPadding,
		s.TruncatedText(render.FontUI10, title, maxTitleWidth, render.Bold), true, render.Bold)
	s.DrawLine(rect.X, rect.Bottom()-3, rect.Right()-1, rect.Bottom()-3, 1, true)

	if subtitle != "" {
		truncated := s.TruncatedText(render.FontSmall, subtitle, maxSubtitleWidth, render.Regular)
		width := s.TextWidth(render.FontSmall, truncated, render.Regular)
		s.DrawText(render.FontSmall, rect.X+(rect.Width-width)/2, rect.Y+m.TopPadding, truncated, true, render.Regular)
	}
}

func (t *Compact) DrawSubHeader(s render.Surface, rect layout.Rect, label, rightLabel string) {
	m := compactMetrics
	rightSpace := m.ContentSidePadding
	if rightLabel != "" {
		truncatedRight := s.TruncatedText(render.FontSmall, rightLabel, maxListValueWidth, render.Regular)
		rightWidth := s.TextWidth(render.FontSmall, truncatedRight, render.Regular)
		s.DrawText(render.FontSmall, rect.Right()-m.ContentSidePadding-rightWidth, rect.Y+7, truncatedRight, true, render.Regular)
		rightSpace += rightWidth + hPaddingInSelection
	}

	budget := rect.Width - m.ContentSidePadding - rightSpace
	s.DrawText(render.FontUI10, rect.X+m.ContentSidePadding, rect.Y+6,
		s.TruncatedText(render.FontUI10, label, budget, render.Regular), true, render.Regular)
	s.DrawLine(rect.X, rect.Bottom()-1, rect.Right()-1, rect.Bottom()-1, 1, true)
}

func (t *Compact) DrawTabBar(s render.Surface, rect layout.Rect, tabs []TabInfo, focused bool) {
	m := compactMetrics
	currentX := rect.X + m.ContentSidePadding

	if focused {
		s.FillRectDither(rect.X, rect.Y, rect.Width, rect.Height, render.LightGray)
	}

	for _, tab := range tabs {
		textWidth := s.TextWidth(render.FontUI10, tab.Label, render.Regular)
		bandWidth := textWidth + 2*hPaddingInSelection

		if tab.Selected {
			if focused {
				s.FillRectDither(currentX, rect.Y+1, bandWidth, rect.Height-4, render.Black)
			} else {
				s.FillRectDither(currentX, rect.Y, bandWidth, rect.Height-3, render.LightGray)
				s.DrawLine(currentX, rect.Bottom()-3, currentX+bandWidth, rect.Bottom()-3, 2, true)
			}
		}

		s.DrawText(render.FontUI10, currentX+hPaddingInSelection, rect.Y+6, tab.Label, !(tab.Selected && focused), render.Regular)
		currentX += bandWidth + m.TabSpacing
	}

	s.DrawLine(rect.X, rect.Bottom()-1, rect.Right()-1, rect.Bottom()-1, 1, true)
}

func (t *Compact) DrawList(s render.Surface, rect layout.Rect, itemCount, selectedIndex int, rows ListRows) {
	m := compactMetrics
	if rows.Title == nil {
		t.logger.Errorf("theme-compact", "list drawn without a title callback")
		return
	}

	rowHeight := m.ListRowHeight
	if rows.Subtitle != nil {
		rowHeight = m.ListWithSubtitleRowHeight
	}
	if rect.Empty() {
		return
	}
	page := Paginate(itemCount, selectedIndex, rect.Height, rowHeight)
	if page.ItemsPerPage == 0 {
		return
	}

	contentWidth := rect.Width - 1
	if thumb, ok := ScrollBar(rect.Height, itemCount, page); ok {
		scrollBarX := rect.Right() - m.ScrollBarRightOffset
		s.DrawLine(scrollBarX, rect.Y, scrollBarX, rect.Bottom(), 1, true)
		s.FillRect(scrollBarX-m.ScrollBarWidth, rect.Y+thumb.Y, m.ScrollBarWidth, thumb.Height, true)
		contentWidth = rect.Width - (m.ScrollBarWidth + m.ScrollBarRightOffset)
	}

	if selectedIndex >= 0 && selectedIndex < itemCount {
		s.FillRectDither(rect.X+m.ContentSidePadding, rect.Y+selectedIndex%page.ItemsPerPage*rowHeight,
			contentWidth-m.ContentSidePadding*2, rowHeight, render.LightGray)
	}

	textX := rect.X + m.ContentSidePadding + hPaddingInSelection
	textWidth := contentWidth - m.ContentSidePadding*2 - hPaddingInSelection*2
	iconSize := listIconSize
	iconY := 10
	if rows.Subtitle != nil {
		iconSize = mainMenuIconSize
		iconY = 16
	}
	if rows.Icon != nil {
		textX += iconSize + hPaddingInSelection
		textWidth -= iconSize + hPaddingInSelection
	}

	for i := page.Start; i < page.End; i++ {
		itemY := rect.Y + (i%page.ItemsPerPage)*rowHeight
		rowTextWidth := textWidth

		// The value claims its width before the title is truncated.
		valueText := ""
		valueWidth := 0
		if rows.Value != nil {
			valueText = s.TruncatedText(render.FontUI10, rows.Value(i), maxListValueWidth, render.Regular)
			valueWidth = s.TextWidth(render.FontUI10, valueText, render.Regular) + hPaddingInSelection
			rowTextWidth -= valueWidth
		}

		title := s.TruncatedText(render.FontUI10, rows.Title(i), rowTextWidth, render.Regular)
		s.DrawText(render.FontUI10, textX, itemY+7, title, true, render.Regular)

		if rows.Icon != nil {
			if bitmap := t.icons.Resolve(rows.Icon(i), iconSize); bitmap != nil {
				s.DrawIcon(bitmap, rect.X+m.ContentSidePadding+hPaddingInSelection, itemY+iconY, iconSize, iconSize)
			}
		}

		if rows.Subtitle != nil {
			subtitle := s.TruncatedText(render.FontSmall, rows.Subtitle(i), rowTextWidth, render.Regular)
			s.DrawText(render.FontSmall, textX, itemY+30, subtitle, true, render.Regular)
		}

		if valueText != "" {
			inverted := i == selectedIndex && rows.HighlightValue
			if inverted {
				s.FillRect(rect.X+contentWidth-m.ContentSidePadding-hPaddingInSelection-valueWidth, itemY,
					valueWidth+hPaddingInSelection, rowHeight, true)
			}
			s.DrawText(render.FontUI10, rect.X+contentWidth-m.ContentSidePadding-valueWidth, itemY+6, valueText, !inverted, render.Regular)
		}
	}
}

func (t *Compact) DrawButtonHints(s render.Surface, btn1, btn2, btn3, btn4 string) {
	original := s.Orientation()
	s.SetOrientation(render.Portrait)
	defer s.SetOrientation(original)

	// The last drawable row is ScreenHeight()-1.
	pageHeight := s.ScreenHeight() - 1
	// TextHeight covers the ascender only; 4px stands in for the descender.
	buttonHeight := s.TextHeight(render.FontSmall) + 4
	labels := [4]string{btn1, btn2, btn3, btn4}
	t.logger.Debugf("theme-compact", "button hints pageHeight=%d buttonHeight=%d", pageHeight, buttonHeight)

	top := pageHeight - buttonHeight
	s.FillRect(0, top, s.ScreenWidth()-1, buttonHeight, false)
	for i, label := range labels {
		if label == "" {
			continue
		}
		x := hintButtonX[i]
		s.DrawRect(x, top, hintButtonWidth, buttonHeight, 1, true)
		textWidth := s.TextWidth(render.FontSmall, label, render.Regular)
		s.DrawText(render.FontSmall, x+(hintButtonWidth-1-textWidth)/2, top, label, true, render.Regular)
	}
}

func (t *Compact) DrawSideButtonHints(s render.Surface, top, bottom string) {
	buttonWidth := compactMetrics.SideButtonHintsWidth
	x := s.ScreenWidth() - buttonWidth
	lineHeight := s.LineHeight(render.FontSmall)

	for i, label := range [2]string{top, bottom} {
		if label == "" {
			continue
		}
		// The lower button starts a fixed gap below the upper one's bottom border.
		y := topHintButtonY + i*(sideHintButtonHeight+sideHintGap)
		s.DrawRect(x, y, buttonWidth, sideHintButtonHeight, 1, true)
		textWidth := s.TextWidth(render.FontSmall, label, render.Regular)
		s.DrawTextRotated90CW(render.FontSmall, x+(buttonWidth-lineHeight)/2, y+(sideHintButtonHeight+textWidth)/2, label)
	}
}

func (t *Compact) DrawButtonMenu(s render.Surface, rect layout.Rect, buttonCount, selectedIndex int, label func(int) string, icon func(int) icons.Icon) {
	m := compactMetrics
	if label == nil {
		return
	}
	lineHeight := s.LineHeight(render.FontUI12)
	for i := 0; i < buttonCount; i++ {
		tile := layout.R(rect.X+m.ContentSidePadding, rect.Y+i*(m.MenuRowHeight+m.MenuSpacing),
			rect.Width-m.ContentSidePadding*2, m.MenuRowHeight)

		if i == selectedIndex {
			s.FillRectDither(tile.X, tile.Y, tile.Width, tile.Height, render.LightGray)
		}

		textX := tile.X + 16
		textY := tile.Y + (m.MenuRowHeight-lineHeight)/2
		if icon != nil {
			if bitmap := t.icons.Resolve(icon(i), mainMenuIconSize); bitmap != nil {
				s.DrawIcon(bitmap, textX, textY+3, mainMenuIconSize, mainMenuIconSize)
				textX += mainMenuIconSize + hPaddingInSelection + 2
			}
		}
		s.DrawText(render.FontUI12, textX, textY, label(i), true, render.Regular)
	}
}

func (t *Compact) DrawRecentBookCover(s render.Surface, rect layout.Rect, books []RecentBook, selectorIndex int, cache *CoverCache) {
	if len(books) == 0 {
		t.DrawEmptyRecents(s, rect)
		return
	}
	if cache == nil {
		cache = &CoverCache{}
	}

	m := compactMetrics
	tiles := layout.Columns(rect, 3, m.ContentSidePadding)
	tileWidth := tiles[0].Width
	titleHeight := rect.Height - m.HomeCoverHeight - hPaddingInSelection
	count := min(len(books), m.HomeRecentBooksCount, len(tiles))

	if !cache.Rendered {
		for i := 0; i < count; i++ {
			t.drawCoverTile(s, tiles[i], books[i])
		}
		cache.BufferStored = s.StoreBuffer()
		cache.Rendered = true
	}

	for i := 0; i < count; i++ {
		tile := tiles[i]
		if i == selectorIndex {
			s.FillRectDither(tile.X, tile.Y, tileWidth, hPaddingInSelection, render.LightGray)
			s.FillRectDither(tile.X, tile.Y+hPaddingInSelection, hPaddingInSelection, m.HomeCoverHeight, render.LightGray)
			s.FillRectDither(tile.X+tileWidth-hPaddingInSelection, tile.Y+hPaddingInSelection, hPaddingInSelection, m.HomeCoverHeight, render.LightGray)
			s.FillRectDither(tile.X, tile.Y+m.HomeCoverHeight+hPaddingInSelection, tileWidth, titleHeight, render.LightGray)
		}
		title := s.TruncatedText(render.FontUI10, books[i].Title, tileWidth-2*hPaddingInSelection, render.Regular)
		s.DrawText(render.FontUI10, tile.X+hPaddingInSelection, tile.Y+rect.Height-titleHeight+hPaddingInSelection+5, title, true, render.Regular)
	}
}

// drawCoverTile draws one cover, or a placeholder when it cannot be loaded.
func (t *Compact) drawCoverTile(s render.Surface, tile layout.Rect, book RecentBook) {
	m := compactMetrics
	inner := layout.Inset(tile, hPaddingInSelection)
	x, y, width := inner.X, inner.Y, inner.Width
	height := m.HomeCoverHeight

	hasCover := false
	if book.CoverPath != "" && t.covers != nil {
		img, err := t.covers.LoadCover(book.CoverPath, height)
		switch {
		case err == nil && img != nil:
			cover := layout.FromImage(img.Bounds())
			crop := CoverCrop(width, height, cover.Width, cover.Height)
			s.DrawBitmap(img, x, y, width, height, crop)
			hasCover = true
		case errors.Is(err, storage.ErrCoverMissing):
			t.logger.Debugf("theme-compact", "no cover for %q", book.Title)
		case err != nil:
			t.logger.Errorf("theme-compact", "cover for %q unusable: %v", book.Title, err)
		}
	}

	s.DrawRect(x, y, width, height, 1, true)
	if !hasCover {
		s.FillRect(x, y+height/3, width, 2*height/3, true)
		if icon := t.icons.Resolve(icons.Cover, coverIconSize); icon != nil {
			s.DrawIcon(icon, x+24, y+24, coverIconSize, coverIconSize)
		}
	}
}

func (t *Compact) DrawEmptyRecents(s render.Surface, rect layout.Rect) {
	s.DrawText(render.FontUI12, rect.X+emptyRecentsPadding, rect.Y+rect.Height/2-s.LineHeight(render.FontUI12)-2,
		t.text(i18n.StrNoOpenBook), true, render.Bold)
	s.DrawText(render.FontUI10, rect.X+emptyRecentsPadding, rect.Y+rect.Height/2+2,
		t.text(i18n.StrStartReading), true, render.Regular)
}

func (t *Compact) DrawPopup(s render.Surface, message string) layout.Rect {
	textWidth := s.TextWidth(render.FontUI12, message, render.Regular)
	w := textWidth + popupMarginX*2
	h := s.LineHeight(render.FontUI12) + popupMarginY*2
	popup := layout.CenterIn(layout.R(0, popupY, s.ScreenWidth(), h), w, h)

	s.FillRectDither(popup.X-popupOutline, popup.Y-popupOutline, w+popupOutline*2, h+popupOutline*2, render.White)
	s.FillRectDither(popup.X, popup.Y, w, h, render.Black)
	s.DrawText(render.FontUI12, popup.X+(w-textWidth)/2, popup.Y+popupMarginY-2, message, false, render.Regular)
	s.DisplayBuffer(render.FullRefresh)

	return popup
}

func (t *Compact) FillPopupProgress(s render.Surface, popup layout.Rect, progress int) {
	progress = min(max(progress, 0), 100)
	// Bar spans the text area of the popup and sits centered in its bottom margin.
	barWidth := popup.Width - popupMarginX*2
	barX := popup.X + (popup.Width-barWidth)/2
	barY := popup.Bottom() - popupMarginY/2 - popupBarHeight/2 - 1

	s.FillRect(barX, barY, barWidth*progress/100, popupBarHeight, false)
	s.DisplayBuffer(render.FastRefresh)
}

func (t *Compact) DrawTextField(s render.Surface, rect layout.Rect, textWidth int) {
	lineY := rect.Bottom() + s.LineHeight(render.FontUI12) + compactMetrics.VerticalSpacing
	lineW := textWidth + hPaddingInSelection*2
	s.DrawLine(rect.X+(rect.Width-lineW)/2, lineY, rect.X+(rect.Width+lineW)/2, lineY, 3, true)
}

func (t *Compact) DrawKeyboardKey(s render.Surface, rect layout.Rect, label string, selected bool) {
	if selected {
		s.FillRectDither(rect.X, rect.Y, rect.Width, rect.Height, render.Black)
	}
	textWidth := s.TextWidth(render.FontUI12, label, render.Regular)
	text := layout.CenterIn(rect, textWidth, s.LineHeight(render.FontUI12))
	s.DrawText(render.FontUI12, text.X, text.Y, label, !selected, render.Regular)
}
