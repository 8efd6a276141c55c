package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/example/folioview/internal/render"
)

const checkerSize = 16

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// baseline returns the y of a single line of face centred vertically in r.
func baseline(face font.Face, r image.Rectangle) int {
	m := face.Metrics()
	return r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
}

func clip(dst *image.RGBA, r image.Rectangle) *image.RGBA {
	return dst.SubImage(r).(*image.RGBA)
}

// drawFrame renders st into a fresh buffer and publishes it. It gives up
// between stages once ctx is cancelled by a newer frame.
func drawFrame(ctx context.Context, log zerolog.Logger, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	fill(dst, dst.Bounds(), th.Background)
	drawHeader(dst, st)
	if ctx.Err() != nil {
		return
	}
	if !st.layout.image.Empty() {
		drawImagePanel(dst, st)
	}
	if ctx.Err() != nil {
		return
	}
	if !st.layout.panel.Empty() {
		drawPanel(dst, st)
	}
	if !st.layout.thumbs.Empty() {
		drawThumbs(dst, st)
	}
	if ctx.Err() != nil {
		return
	}

	fill(dst, st.layout.controls, th.ToolbarBackground)
	for i, btn := range st.buttons {
		state := StateDefault
		switch i {
		case st.pressed:
			state = StatePressed
		case st.hover:
			state = StateHover
		}
		btn.Draw(dst, state)
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st)
	}
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawHeader(dst *image.RGBA, st paintState) {
	r := st.layout.header
	th := st.theme
	fill(dst, r, th.HeaderBackground)
	y := baseline(st.ui, r)
	render.DrawText(dst, st.ui, image.Pt(r.Min.X+pad, y), th.HeaderText, st.title)
	fw := render.TextWidth(st.ui, st.folio)
	render.DrawText(dst, st.ui, image.Pt(r.Min.X+(r.Dx()-fw)/2, y), th.HeaderText, st.folio)
	render.DrawTextRight(dst, st.ui, image.Pt(r.Max.X-pad, y), th.HeaderText, st.zoom)
}

func drawImagePanel(dst *image.RGBA, st paintState) {
	th := st.theme
	area := clip(dst, st.layout.image)
	render.Checkerboard(area, st.layout.image, checkerSize, th.CheckerLight, th.CheckerDark)

	if st.page == nil {
		w := render.TextWidth(st.ui, st.pageNote)
		r := st.layout.image
		render.DrawText(area, st.ui, image.Pt(r.Min.X+(r.Dx()-w)/2, baseline(st.ui, r)), th.Foreground, st.pageNote)
		return
	}
	xdraw.ApproxBiLinear.Scale(area, st.pageRect, st.page, st.page.Bounds(), draw.Over, nil)

	for _, o := range st.overlays {
		render.FillRect(area, o.rect, o.fill, o.opacity)
		if !st.showBoxes {
			continue
		}
		render.StrokeRect(area, o.rect, th.OverlayBorder, 1)
		if o.active {
			render.DashedRect(area, o.rect, 6, 2, th.OverlayBorder, color.White)
		}
	}
	if st.tooltip != nil {
		drawTooltip(area, st)
	}
}

func drawTooltip(dst *image.RGBA, st paintState) {
	tip := st.tooltip
	lh := render.LineHeight(st.text)
	w := 0
	for _, l := range tip.lines {
		w = max(w, render.TextWidth(st.text, l))
	}
	w += 2 * pad
	h := len(tip.lines)*lh + pad
	bounds := dst.Bounds()
	x := tip.anchor.X - w/2
	x = max(min(x, bounds.Max.X-w-pad), bounds.Min.X+pad)
	box := image.Rect(x, tip.anchor.Y, x+w, tip.anchor.Y+h)
	fill(dst, box, st.theme.TooltipBackground)
	y := box.Min.Y + pad/2 + st.text.Metrics().Ascent.Ceil()
	for _, l := range tip.lines {
		render.DrawText(dst, st.text, image.Pt(box.Min.X+pad, y), st.theme.TooltipText, l)
		y += lh
	}
}

func drawPanel(dst *image.RGBA, st paintState) {
	th := st.theme
	r := st.layout.panel
	area := clip(dst, r)
	fill(area, r, th.PanelBackground)
	lh := render.LineHeight(st.text)
	ascent := st.text.Metrics().Ascent.Ceil()
	numW := render.TextWidth(st.text, "000")
	for _, row := range st.rows {
		if !row.rect.Overlaps(r) {
			continue
		}
		if row.active {
			fill(area, row.rect, th.LineHighlight)
		}
		y := row.rect.Min.Y + pad/2 + ascent
		render.DrawTextRight(area, st.text, image.Pt(r.Min.X+pad+numW, y), th.LineNumber, row.number)
		left := r.Min.X + 2*pad + numW
		for _, l := range row.text {
			if row.rtl {
				render.DrawTextRight(area, st.text, image.Pt(r.Max.X-pad, y), th.PanelText, l)
			} else {
				render.DrawText(area, st.text, image.Pt(left, y), th.PanelText, l)
			}
			y += lh
		}
		for _, l := range row.translation {
			render.DrawText(area, st.text, image.Pt(left, y), th.LineNumber, l)
			y += lh
		}
	}
}

func drawThumbs(dst *image.RGBA, st paintState) {
	th := st.theme
	r := st.layout.thumbs
	area := clip(dst, r)
	fill(area, r, th.ThumbnailBackground)
	for _, t := range st.thumbs {
		if t.active {
			fill(area, t.slot.cell, th.ThumbnailActive)
		}
		if t.img != nil {
			size := t.img.Bounds().Size()
			at := t.slot.image.Min.Add(image.Pt((t.slot.image.Dx()-size.X)/2, (t.slot.image.Dy()-size.Y)/2))
			if t.active && t.shadow.Image != nil {
				sh := t.shadow.Image
				draw.Draw(area, sh.Bounds().Add(at.Sub(t.shadow.Offset)), sh, image.Point{}, draw.Over)
			} else {
				draw.Draw(area, t.img.Bounds().Sub(t.img.Bounds().Min).Add(at), t.img, t.img.Bounds().Min, draw.Over)
			}
		} else {
			render.Checkerboard(area, t.slot.image, checkerSize/2, th.CheckerLight, th.CheckerDark)
		}
		lw := render.TextWidth(st.ui, t.label)
		y := t.slot.image.Max.Y + st.ui.Metrics().Ascent.Ceil() + 2
		render.DrawText(area, st.ui, image.Pt(t.slot.image.Min.X+(t.slot.image.Dx()-lw)/2, y), th.Foreground, t.label)
	}
}

func drawMessage(dst *image.RGBA, st paintState) {
	face := st.ui
	w := render.TextWidth(face, st.message)
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := (st.width - w) / 2
	py := (st.height-ascent-descent)/2 + ascent
	box := image.Rect(px-pad, py-ascent-pad, px+w+pad, py+descent+pad)
	draw.Draw(dst, box, image.NewUniform(color.RGBA{255, 255, 255, 230}), image.Point{}, draw.Over)
	render.StrokeRect(dst, box, st.theme.ButtonBorder, 2)
	render.DrawText(dst, face, image.Pt(px, py), color.Black, st.message)
}
