package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedycat/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows the game modes defined by the active rules.`,
	Run:   runModes,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List device profiles",
	Long: `Shows the registered device profiles. A profile fixes the grid size
and the base tick interval of a session.`,
	Run: runProfiles,
}

func runModes(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if len(cfg.Modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Mode" header
	for _, m := range cfg.Modes {
		maxNameLen = max(maxNameLen, len(m.Name))
	}

	// Print header
	fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, "Mode", "Time", "Description")
	fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, "----", "----", "-----------")

	for _, m := range cfg.Modes {
		limit := "-"
		if m.TimeLimit > 0 {
			limit = m.TimeLimit.String()
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxNameLen, m.Name, limit, m.Description)
	}

	fmt.Println()
	fmt.Println("Run 'greedycat play <mode>' to play a mode.")
}

func runProfiles(_ *cobra.Command, _ []string) {
	loadConfig()

	profiles := registry.List()
	if len(profiles) == 0 {
		fmt.Println("No profiles available.")
		return
	}

	maxNameLen := 7 // "Profile" header
	for _, p := range profiles {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "Profile", "Grid", "Tick")
	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "-------", "----", "----")

	for _, p := range profiles {
		grid := fmt.Sprintf("%dx%d", p.Settings.GridWidth, p.Settings.GridHeight)
		marker := ""
		if p.Name == registry.DefaultProfile {
			marker = "  (default)"
		}
		fmt.Printf("  %-*s  %-8s  %s%s\n", maxNameLen, p.Name, grid, p.Settings.TickInterval, marker)
	}
}
