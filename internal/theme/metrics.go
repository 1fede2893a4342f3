package theme

// Metrics is the fixed layout table of a theme. All values are non-negative
// and never change at runtime.
type Metrics struct {
	BatteryWidth              int
	BatteryHeight             int
	TopPadding                int
	BatteryBarHeight          int
	HeaderHeight              int
	VerticalSpacing           int
	ContentSidePadding        int
	ListRowHeight             int
	ListWithSubtitleRowHeight int
	MenuRowHeight             int
	MenuSpacing               int
	TabSpacing                int
	TabBarHeight              int
	ScrollBarWidth            int
	ScrollBarRightOffset      int
	HomeTopPadding            int
	HomeCoverHeight           int
	HomeCoverTileHeight       int
	HomeRecentBooksCount      int
	ButtonHintsHeight         int
	SideButtonHintsWidth      int
	ProgressBarHeight         int
	BookProgressBarHeight     int
	KeyboardKeyWidth          int
	KeyboardKeyHeight         int
	KeyboardKeySpacing        int
	KeyboardBottomAligned     bool
	KeyboardCenteredText      bool
}

// compactMetrics is the metrics table of the compact theme. It is only handed
// out by value.
var compactMetrics = Metrics{
	BatteryWidth:              20,
	BatteryHeight:             12,
	TopPadding:                2,
	BatteryBarHeight:          20,
	HeaderHeight:              28,
	VerticalSpacing:           16,
	ContentSidePadding:        4,
	ListRowHeight:             40,
	ListWithSubtitleRowHeight: 60,
	MenuRowHeight:             48,
	MenuSpacing:               8,
	TabSpacing:                8,
	TabBarHeight:              40,
	ScrollBarWidth:            4,
	ScrollBarRightOffset:      5,
	HomeTopPadding:            28,
	HomeCoverHeight:           226,
	HomeCoverTileHeight:       276,
	HomeRecentBooksCount:      3,
	ButtonHintsHeight:         30,
	SideButtonHintsWidth:      28,
	ProgressBarHeight:         16,
	BookProgressBarHeight:     4,
	KeyboardKeyWidth:          30,
	KeyboardKeyHeight:         30,
	KeyboardKeySpacing:        0,
	KeyboardBottomAligned:     true,
	KeyboardCenteredText:      true,
}
