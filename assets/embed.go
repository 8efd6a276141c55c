// Package assets embeds the files shipped inside the folioview binary.
package assets

import "embed"

// ThemeDir is the directory of Themes holding the *.theme files.
const ThemeDir = "themes"

// Themes holds the built-in colour themes.
//
//go:embed themes/*.theme
var Themes embed.FS
