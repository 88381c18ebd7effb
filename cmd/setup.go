package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the embedded example configuration to --output.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")
	if outputPath == "" {
		return fmt.Errorf("%w: --output must not be empty", shared.ErrMissingArgument)
	}

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	r.logger.Info("creating config file from template", "path", outputPath)
	if err := shared.CreateConfigFile(outputPath); err != nil {
		return err
	}

	r.writePlain("✓ Configuration written to %s\n", outputPath)
	r.writePlain("Edit it, then run 'tunebox --config %s --library <dir>'\n", outputPath)
	return nil
}
