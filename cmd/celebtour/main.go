package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/mark3labs/celebtour/internal/logger"
	"github.com/mark3labs/celebtour/internal/tui/theme"
)

const (
	logoText1 = "█▀▀ █▀▀ █   █▀▀ █▄▄ ▀█▀ █▀█ █ █ █▀█"
	logoText2 = "█▄▄ ██▄ █▄▄ ██▄ █▄█  █  █▄█ █▄█ █▀▄"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "celebtour",
	Short: "Virtual luxury car tours with a celebrity guide, in your terminal",
	RunE:  runTour,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.Gradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.Gradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

celebtour walks you through a virtual tour of a luxury car with an
AI-generated celebrity guide: upload a photo to become your avatar, pick a
guide and a car, take the tour, generate a personalized video and share it.

Tours are recorded in an embedded NATS JetStream event log so past videos
can be listed with 'celebtour gallery'.`

	rootCmd.Flags().StringVar(&tourFlags.start, "start", "/", "Route to open first (e.g. /celebrities)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(galleryCmd)
}
