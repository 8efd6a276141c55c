package theme

import (
	"image/color"
)

// Theme defines the color palette for the viewer UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background behind the panels
	Foreground color.RGBA // Main text color

	// Header & controls
	HeaderBackground  color.RGBA
	HeaderText        color.RGBA
	ToolbarBackground color.RGBA

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Image panel
	CheckerLight  color.RGBA
	CheckerDark   color.RGBA
	OverlayBorder color.RGBA // Outline of line boxes when they are shown

	// Tooltip
	TooltipBackground color.RGBA
	TooltipText       color.RGBA

	// Transcription panel
	PanelBackground color.RGBA
	PanelText       color.RGBA
	LineHighlight   color.RGBA // Row of the hovered line
	LineNumber      color.RGBA

	// Thumbnail strip
	ThumbnailBackground color.RGBA
	ThumbnailActive     color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		HeaderBackground:      color.RGBA{60, 45, 30, 255},
		HeaderText:            color.RGBA{250, 245, 235, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		OverlayBorder:         color.RGBA{200, 40, 40, 255},
		TooltipBackground:     color.RGBA{30, 30, 30, 230},
		TooltipText:           color.RGBA{255, 255, 255, 255},
		PanelBackground:       color.RGBA{250, 248, 240, 255},
		PanelText:             color.RGBA{20, 20, 20, 255},
		LineHighlight:         color.RGBA{255, 240, 170, 255},
		LineNumber:            color.RGBA{120, 120, 120, 255},
		ThumbnailBackground:   color.RGBA{235, 235, 235, 255},
		ThumbnailActive:       color.RGBA{40, 90, 200, 255},
	}
}
