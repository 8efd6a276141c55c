package appstate

import (
	"image"
	"image/draw"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/mobile/event/key"

	"github.com/example/folioview/internal/render"
	"github.com/example/folioview/internal/theme"
)

// KeyShortcut is one key combination bound to an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// shortcutOf normalises a key event for lookup. Runes win over codes so
// that '+' matches whichever physical key produced it, and letters match
// in either case.
func shortcutOf(e key.Event) KeyShortcut {
	mods := e.Modifiers & (key.ModControl | key.ModAlt | key.ModMeta)
	if e.Rune > 0 {
		return KeyShortcut{Rune: unicode.ToLower(e.Rune), Modifiers: mods}
	}
	return KeyShortcut{Rune: -1, Code: e.Code, Modifiers: mods}
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive control. Activate runs its action.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton remembers each rendered state of the wrapped Button until
// its rectangle changes.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// ActionButton is a labelled control bar button. On buttons render
// pressed, which is how toggles show their state.
type ActionButton struct {
	label  string
	action string
	on     bool
	rect   image.Rectangle
	face   font.Face
	theme  *theme.Theme
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.theme.ButtonBackground
	switch {
	case state == StatePressed || b.on:
		bg = b.theme.ButtonBackgroundPress
	case state == StateHover:
		bg = b.theme.ButtonBackgroundHover
	}
	draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	render.StrokeRect(dst, b.rect, b.theme.ButtonBorder, 1)
	w := render.TextWidth(b.face, b.label)
	m := b.face.Metrics()
	baseline := b.rect.Min.Y + (b.rect.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	render.DrawText(dst, b.face, image.Pt(b.rect.Min.X+(b.rect.Dx()-w)/2, baseline), b.theme.ButtonText, b.label)
}

func (b *ActionButton) Rect() image.Rectangle     { return b.rect }
func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

// Activate is a no-op; the event loop dispatches on the action name so
// buttons and shortcuts share one code path.
func (b *ActionButton) Activate() {}

// controlSpec names one control bar entry.
type controlSpec struct {
	label  string
	action string
	on     bool
}

// layoutControls sizes buttons to their labels, left to right in bar.
func layoutControls(bar image.Rectangle, face font.Face, th *theme.Theme, specs []controlSpec) []*ActionButton {
	out := make([]*ActionButton, 0, len(specs))
	x := bar.Min.X + pad
	for _, s := range specs {
		w := render.TextWidth(face, s.label) + 2*pad
		r := image.Rect(x, bar.Min.Y+4, x+w, bar.Max.Y-4)
		if r.Max.X > bar.Max.X-pad {
			break
		}
		out = append(out, &ActionButton{label: s.label, action: s.action, on: s.on, rect: r, face: face, theme: th})
		x += w + 4
	}
	return out
}
