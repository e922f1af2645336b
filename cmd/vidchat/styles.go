package main

import "github.com/charmbracelet/lipgloss"

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	dangerColor  = lipgloss.Color("9")

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	userStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	thinkingStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)
