package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark3labs/celebtour/internal/config"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create celebtour configuration file",
	Long: `Create a celebtour configuration file with sensible defaults.

By default, creates a global config at ~/.config/celebtour/celebtour.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	cfg := config.Default()

	var err error
	if setupFlags.project {
		err = config.WriteProject(cfg)
	} else {
		err = config.WriteGlobal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'celebtour' to start your tour.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
