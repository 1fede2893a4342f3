package screens

import (
	"context"
	"fmt"
	"image"

	"github.com/rook-computer/inkpoint/internal/activity"
	"github.com/rook-computer/inkpoint/internal/i18n"
	"github.com/rook-computer/inkpoint/internal/icons"
	"github.com/rook-computer/inkpoint/internal/input"
	"github.com/rook-computer/inkpoint/internal/render"
	"github.com/rook-computer/inkpoint/internal/render/layout"
	"github.com/rook-computer/inkpoint/internal/storage"
	"github.com/rook-computer/inkpoint/internal/theme"
)

const transferQRSize = 200

// Transfer shows where to reach the web UI and what the library holds.
// Remote changes to the library are picked up while the screen is open.
type Transfer struct {
	activity.Base

	env      *Env
	nav      input.Navigator
	url      string
	qr       image.Image
	files    []storage.File
	revision uint64
	selected int
}

func NewTransfer(env *Env) *Transfer {
	return &Transfer{env: env}
}

func (screen *Transfer) Name() string { return "transfer" }

func (screen *Transfer) Start(ctx context.Context) error {
	if err := screen.env.require(false, false, true); err != nil {
		return err
	}
	screen.nav = input.NewNavigator(screen.env.Host.Input())
	screen.selected = 0
	screen.url = ""
	if screen.env.TransferURL != nil {
		screen.url = screen.env.TransferURL()
	}
	qr, err := render.QRCode(screen.url, transferQRSize)
	if err != nil {
		screen.env.logger().Errorf("transfer", "qr code for %q: %v", screen.url, err)
	}
	screen.qr = qr
	screen.refresh()
	return nil
}

func (screen *Transfer) refresh() {
	if screen.env.LibraryRevision != nil {
		screen.revision = screen.env.LibraryRevision()
	}
	files, err := screen.env.Library.List()
	if err != nil {
		screen.env.logger().Errorf("transfer", "list library: %v", err)
	}
	screen.files = files
	screen.selected = min(screen.selected, max(len(files)-1, 0))
	screen.RequestUpdate()
}

func (screen *Transfer) Stop() error { return nil }

func (screen *Transfer) Loop(ctx context.Context) {
	if screen.env.Host.Input().WasPressed(input.Back) {
		screen.env.Host.Back()
		return
	}
	if screen.env.LibraryRevision != nil && screen.env.LibraryRevision() != screen.revision {
		screen.refresh()
	}

	screen.nav.OnNextRelease(func() {
		screen.selected = input.NextIndex(screen.selected, len(screen.files))
		screen.RequestUpdate()
	})
	screen.nav.OnPreviousRelease(func() {
		screen.selected = input.PreviousIndex(screen.selected, len(screen.files))
		screen.RequestUpdate()
	})
}

func (screen *Transfer) Render(lock *render.Lock) {
	s := lock.Surface()
	th := screen.env.Theme
	m := th.Metrics()
	s.ClearScreen()

	header := headerRect(s, m)
	th.DrawHeader(s, header, screen.env.tr(i18n.StrFileTransfer), "")

	sub := layout.R(0, header.Bottom(), s.ScreenWidth(), m.TabBarHeight)
	label := screen.url
	if label == "" {
		label = screen.env.tr(i18n.StrTransferHint)
	}
	th.DrawSubHeader(s, sub, label, fmt.Sprintf("%d %s", len(screen.files), screen.env.tr(i18n.StrFiles)))

	list := contentRect(s, m, sub.Bottom()+m.VerticalSpacing)
	if screen.qr != nil {
		band, _ := layout.SplitHorizontal(list, transferQRSize)
		qr := layout.FitSquare(band)
		s.DrawBitmap(screen.qr, qr.X, qr.Y, qr.Width, qr.Height, 0)
		list = contentRect(s, m, band.Bottom()+m.VerticalSpacing)
	}

	if len(screen.files) == 0 {
		s.DrawCenteredText(render.FontUI10, list.Y+m.VerticalSpacing, screen.env.tr(i18n.StrLibraryEmpty), true, render.Regular)
	} else {
		th.DrawList(s, list, len(screen.files), screen.selected, theme.ListRows{
			Title: func(i int) string { return screen.files[i].Name },
			Icon:  func(int) icons.Icon { return icons.Book },
			Value: func(i int) string { return storage.HumanSize(screen.files[i].Size) },
		})
	}

	screen.env.drawHints(s, i18n.StrBack, "", i18n.StrDirUp, i18n.StrDirDown)
	s.DisplayBuffer(render.FastRefresh)
}
