package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/flightdeck/internal/cmd"
	"github.com/gravitrone/flightdeck/internal/config"
	"github.com/gravitrone/flightdeck/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flightdeck",
		Short: "flightdeck - flight booking in the terminal",
		Long:  "flightdeck: browse the booking tabs and build one-way, round-trip or multi-city itineraries.",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.ItineraryCmd())
	root.AddCommand(cmd.TabsCmd())
	root.AddCommand(cmd.ConfigCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

// setupLogging sends log output to ~/.flightdeck/debug.log when
// FLIGHTDECK_DEBUG is set. The alt screen owns stdout otherwise.
func setupLogging() (io.Closer, error) {
	if os.Getenv("FLIGHTDECK_DEBUG") == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(config.Dir(), 0700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(filepath.Join(config.Dir(), "debug.log"), "flightdeck")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return f, nil
}

func runTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := setupLogging()
	if err != nil {
		return err
	}
	defer logFile.Close()

	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("flightdeck needs an interactive terminal; try 'flightdeck itinerary'")
	}

	log.Printf("starting tui narrow_width=%d vim_keys=%v", cfg.NarrowWidth, cfg.VimKeys)
	p := tea.NewProgram(ui.NewApp(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
