package appstate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/viewport"
)

const messageDuration = 2 * time.Second

// Main runs the window event loop on s.
func (a *AppState) Main(s screen.Screen) {
	v := a.viewer
	ui, err := render.LoadFace("", uiFontSize)
	if err != nil {
		a.err = err
		return
	}
	text, err := render.LoadFace(a.fontFile, textFontSize)
	if err != nil {
		a.log.Warn().Err(err).Str("font", a.fontFile).Msg("falling back to bundled font")
		text, _ = render.LoadFace("", textFontSize)
	}

	width, height := defaultWidth, defaultHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: v.Title()})
	if err != nil {
		a.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()
	v.Resize(width)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := sceneInput{
		width:     width,
		height:    height,
		theme:     a.theme,
		ui:        ui,
		text:      text,
		thumbSize: a.thumbSize,
		thumbs:    make(map[int]thumbEntry),
	}

	gen := 0
	requestPage := func() {
		gen++
		g, page, path := gen, v.Page(), v.ImagePath()
		in.page, in.pageErr = nil, nil
		go func() {
			img, err := loadPage(path)
			w.Send(pageLoaded{gen: g, page: page, img: img, err: err})
		}()
	}
	requestPage()

	if a.thumbSize > 0 {
		id := v.Manuscript().Metadata.ID
		go func() {
			err := loadThumbnails(ctx, v.Thumbnails(), func(p int) string { return a.assets.ImagePath(id, p) },
				a.thumbSize, func(t thumbLoaded) { w.Send(t) })
			if err != nil && !errors.Is(err, context.Canceled) {
				a.log.Warn().Err(err).Msg("thumbnails")
			}
		}()
	}

	pt := startPainter(ctx, func(fctx context.Context, st paintState) {
		drawFrame(fctx, a.log, s, w, st)
	})
	defer pt.stop()

	var (
		buttons      []*CacheButton
		buttonsKey   string
		hoverButton  = -1
		pressed      = -1
		message      string
		messageUntil time.Time
	)
	refreshButtons := func(bar image.Rectangle) {
		specs := controlSpecs(v)
		k := fmt.Sprint(bar, specs)
		if k == buttonsKey {
			return
		}
		buttonsKey = k
		buttons = buttons[:0:0]
		for _, b := range layoutControls(bar, ui, a.theme, specs) {
			buttons = append(buttons, &CacheButton{Button: b})
		}
		hoverButton, pressed = -1, -1
	}
	buttonAt := func(p image.Point) int {
		for i, b := range buttons {
			if p.In(b.Rect()) {
				return i
			}
		}
		return -1
	}
	report := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(messageDuration)
		a.log.Info().Msg(msg)
	}
	place := func() (layout, pageGeometry) {
		lay, g := geometry(v, in)
		v.SetDisplaySize(g.display)
		return lay, g
	}
	pageChanged := func(before int) {
		if v.Page() == before {
			return
		}
		requestPage()
		in.panelScroll = 0
		lay, _ := place()
		in.thumbScroll = scrollToShow(in.thumbScroll, v.Page(), visibleThumbs(lay.thumbs, in.thumbSize), v.PageCount())
	}

	run := func(action string) (quit bool) {
		before := v.Page()
		switch action {
		case actionQuit:
			return true
		case actionCopyLine:
			detail, err := copyLine(v)
			if err != nil {
				report(err.Error())
				break
			}
			report("Copied " + detail)
			a.notifier.Copy(detail)
		case actionCopyPage:
			detail, err := copyPage(v, in.page, a.composeOptions())
			if err != nil {
				report("copy: " + err.Error())
				break
			}
			report("Copied " + detail)
			a.notifier.Copy(detail)
		case actionExport:
			path, err := exportPage(v, in.page, a.exportDir, a.composeOptions())
			if err != nil {
				report("export: " + err.Error())
				break
			}
			report("Exported " + path)
			a.notifier.Export(path)
		default:
			apply(v, action)
			if action == actionHoverNext || action == actionHoverPrev {
				lay, _ := place()
				in.panelScroll = scrollToRow(panelRows(text, v, lay.panel, in.panelScroll), lay.panel, in.panelScroll)
			}
		}
		pageChanged(before)
		return false
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				pt.interrupt()
				return
			}

		case size.Event:
			in.width, in.height = e.WidthPx, e.HeightPx
			v.Resize(in.width)
			w.Send(paint.Event{})

		case pageLoaded:
			if e.gen != gen {
				continue
			}
			if e.err != nil {
				in.pageErr = e.err
				a.log.Warn().Err(e.err).Int("page", e.page).Msg("page image")
			} else {
				in.page = e.img
				v.SetNaturalSize(viewport.SizeOf(e.img.Bounds()))
			}
			w.Send(paint.Event{})

		case thumbLoaded:
			in.thumbs[e.page] = e.entry
			w.Send(paint.Event{})

		case paint.Event:
			st := buildScene(v, in)
			refreshButtons(st.layout.controls)
			st.buttons = buttons
			st.hover, st.pressed = hoverButton, pressed
			st.message, st.messageUntil = message, messageUntil
			pt.submit(st)

		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			action, ok := keymap[shortcutOf(e)]
			if !ok {
				continue
			}
			if run(action) {
				pt.interrupt()
				return
			}
			w.Send(paint.Event{})

		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			at := viewport.Point{X: float64(e.X), Y: float64(e.Y)}
			lay, g := place()
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			switch {
			case e.Button.IsWheel():
				if e.Direction == mouse.DirRelease || (e.Button != mouse.ButtonWheelUp && e.Button != mouse.ButtonWheelDown) {
					continue
				}
				up := e.Button == mouse.ButtonWheelUp
				switch {
				case p.In(lay.image) && up:
					v.ZoomIn()
				case p.In(lay.image):
					v.ZoomOut()
				case p.In(lay.panel):
					step := 3 * render.LineHeight(text)
					if up {
						step = -step
					}
					in.panelScroll = max(in.panelScroll+step, 0)
				case p.In(lay.thumbs):
					step := 1
					if up {
						step = -1
					}
					visible := visibleThumbs(lay.thumbs, in.thumbSize)
					in.thumbScroll = max(min(in.thumbScroll+step, v.PageCount()-visible), 0)
				}

			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
				if i := buttonAt(p); i >= 0 {
					pressed = i
					break
				}
				switch {
				case p.In(lay.thumbs):
					for _, slot := range thumbSlots(lay.thumbs, v.PageCount(), in.thumbSize, in.thumbScroll) {
						if p.In(slot.cell) {
							before := v.Page()
							v.SetPage(slot.page)
							pageChanged(before)
						}
					}
				case p.In(lay.panel):
					if line := rowAt(panelRows(text, v, lay.panel, in.panelScroll), p); line != nil {
						v.SetHover(line)
					}
				case p.In(lay.image):
					v.PointerDown(at)
				}

			case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
				v.PointerUp()
				if pressed >= 0 && pressed < len(buttons) && p.In(buttons[pressed].Rect()) {
					action := buttons[pressed].Button.(*ActionButton).action
					pressed = -1
					if run(action) {
						pt.interrupt()
						return
					}
				}
				pressed = -1

			case e.Direction == mouse.DirNone:
				hoverButton = buttonAt(p)
				switch {
				case v.Dragging():
					if p.In(lay.image) {
						v.PointerMove(at)
					} else {
						v.PointerUp()
					}
				case p.In(lay.image):
					v.HoverAt(g.fromWindow(at))
				case p.In(lay.panel):
					v.SetHover(rowAt(panelRows(text, v, lay.panel, in.panelScroll), p))
				default:
					v.SetHover(nil)
				}
			}
			w.Send(paint.Event{})

		case touch.Event:
			at := viewport.Point{X: float64(e.X), Y: float64(e.Y)}
			lay, g := place()
			id := int64(e.Sequence)
			switch e.Type {
			case touch.TypeBegin:
				if image.Pt(int(e.X), int(e.Y)).In(lay.image) {
					v.HoverAt(g.fromWindow(at))
					v.TouchStart(id, at)
				}
			case touch.TypeMove:
				v.TouchMove(id, at)
			case touch.TypeEnd:
				v.TouchEnd(id)
			}
			w.Send(paint.Event{})

		case error:
			a.log.Error().Err(e).Msg("window event")
		}
	}
}
