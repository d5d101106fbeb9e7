package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirmod/cmd/dirmod"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func main() {
	rootCmd := dirmod.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
