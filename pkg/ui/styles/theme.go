// Package styles provides the shared lipgloss theme for the scandoc UI and
// the terminal rendering of the output element.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (purple)
	ColorAccent = lipgloss.Color("141")

	// Text colors
	ColorText      = lipgloss.Color("252") // Primary text
	ColorTextMuted = lipgloss.Color("245") // Secondary/muted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")

	// Code/syntax colors
	ColorCode   = lipgloss.Color("213")
	ColorCodeBg = lipgloss.Color("235")

	// Separator between output and input
	ColorBorderMuted = lipgloss.Color("62")
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextBoldStyle for <b>/<strong>
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// TextItalicStyle for <i>/<em>
	TextItalicStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Italic(true)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Input styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(ColorBorderMuted)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	LoadingStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true)
)

// CodeStyle for <code> and <pre> content
var CodeStyle = lipgloss.NewStyle().
	Foreground(ColorCode).
	Background(ColorCodeBg)

// Status bar styles
var (
	// StatusBarStyle is the default status bar style (purple theme)
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	// StatusBarStyleCyan is the cyan theme variant
	StatusBarStyleCyan = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#00B8D4")).
				Padding(0, 1).
				Bold(true)

	// StatusBarStyleDark is the dark theme variant
	StatusBarStyleDark = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D0D0D0")).
				Background(lipgloss.Color("#3C3C3C")).
				Padding(0, 1)
)

// StatusBar returns the status bar style for a config theme name.
func StatusBar(theme string) lipgloss.Style {
	switch theme {
	case "cyan":
		return StatusBarStyleCyan
	case "dark":
		return StatusBarStyleDark
	default:
		return StatusBarStyle
	}
}
