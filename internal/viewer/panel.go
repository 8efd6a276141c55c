package viewer

// Panel selects which half of the view is shown on a small screen.
type Panel int

const (
	PanelImage Panel = iota
	PanelTranscription
)

func (p Panel) String() string {
	if p == PanelTranscription {
		return "transcription"
	}
	return "image"
}

// Other returns the opposite panel.
func (p Panel) Other() Panel {
	if p == PanelImage {
		return PanelTranscription
	}
	return PanelImage
}

// Layout says which panels to draw.
type Layout struct {
	Image         bool
	Transcription bool
	// FullWidth is set when the image panel has the whole width.
	FullWidth bool
}

// Resize derives the small screen flag from the window width. A window
// exactly smallScreenWidth wide is small.
func (v *Viewer) Resize(width int) {
	v.SetSmallScreen(width <= v.smallScreenWidth)
}

// SetSmallScreen records the small screen flag. Only a large to small
// transition resets the active panel to the image; small to large and
// repeated reports leave it alone, so intermediate resize events never
// flip panels.
func (v *Viewer) SetSmallScreen(small bool) {
	if small && !v.smallScreen {
		v.panel = PanelImage
		v.log.Debug().Msg("small screen, showing image panel")
	}
	v.smallScreen = small
}

func (v *Viewer) SmallScreen() bool { return v.smallScreen }

func (v *Viewer) ActivePanel() Panel { return v.panel }

// TogglePanel switches between image and transcription. It only has an
// effect on a small screen.
func (v *Viewer) TogglePanel() bool {
	if !v.smallScreen {
		return false
	}
	v.panel = v.panel.Other()
	v.log.Debug().Stringer("panel", v.panel).Msg("panel toggled")
	return true
}

// VisiblePanels returns the panels to draw for the current screen size and
// toggles.
func (v *Viewer) VisiblePanels() Layout {
	if v.smallScreen {
		return Layout{
			Image:         v.panel == PanelImage,
			Transcription: v.panel == PanelTranscription,
			FullWidth:     v.panel == PanelImage,
		}
	}
	return Layout{
		Image:         true,
		Transcription: v.showTranscription,
		FullWidth:     !v.showTranscription,
	}
}
