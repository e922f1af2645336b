package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: vidchat <video-file>")
		os.Exit(2)
	}

	config, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidchat: %v\n", err)
		os.Exit(1)
	}

	program := tea.NewProgram(newApp(config, os.Args[1]), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "vidchat: %v\n", err)
		os.Exit(1)
	}
}
