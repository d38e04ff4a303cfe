package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorGreen     = lipgloss.Color("#00FF87")
	colorYellow    = lipgloss.Color("#FFD75F")
	colorPurple    = lipgloss.Color("#AF87FF")
	colorRed       = lipgloss.Color("#FF5F5F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1).
			MarginBottom(1)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			MarginBottom(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			MarginTop(1)

	// segment colors mirror what clients render: structural tokens muted,
	// learned tokens green, exploratory yellow, user-authored purple
	coreTokenStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	learnedTokenStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	exploratoryTokenStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	userTokenStyle = lipgloss.NewStyle().
			Foreground(colorPurple)
)
