package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/filematch/filematch/internal/platform"
	"github.com/filematch/filematch/pkg/config"
	"github.com/filematch/filematch/pkg/models"
)

// validateCompareRoots checks both roots before any work starts. A bad
// root is a hard failure, not a per-file error.
func validateCompareRoots(dir1, dir2 string) error {
	for _, dir := range []string{dir1, dir2} {
		if err := platform.ValidatePath(dir); err != nil {
			return err
		}

		info, err := os.Stat(platform.NormalizePath(dir))
		if os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
		if err != nil {
			return fmt.Errorf("failed to access directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", dir)
		}
	}

	abs1, err := filepath.Abs(dir1)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	abs2, err := filepath.Abs(dir2)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if abs1 == abs2 {
		return fmt.Errorf("both arguments refer to the same directory: %s", abs1)
	}

	return nil
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags.
// Boolean flags only override when set on the command line, so a config
// file value is not silently reset by the flag default.
func applyFlagsToConfig(cfg *config.Config, cmd *cobra.Command) {
	if compareFlags.Algorithm != "" {
		cfg.Compare.Algorithm = models.HashAlgorithm(compareFlags.Algorithm)
	}

	if cmd.Flags().Changed("skip-hidden") {
		cfg.Compare.SkipHidden = compareFlags.SkipHidden
	}
	if cmd.Flags().Changed("relative") {
		cfg.Compare.Relative = compareFlags.Relative
	}
	if cmd.Flags().Changed("sort") {
		cfg.Compare.Sort = compareFlags.Sort
	}

	if compareFlags.Workers > 0 {
		cfg.Performance.MaxWorkers = compareFlags.Workers
	}

	if len(compareFlags.Exclude) > 0 {
		cfg.Exclude = compareFlags.Exclude
	}

	if compareFlags.Output != "" {
		cfg.Output.Format = compareFlags.Output
	}

	// Disable progress in quiet mode
	if globalFlags.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	// Enable progress in verbose mode
	if globalFlags.Verbose {
		cfg.Output.Progress = true
	}
}

// createCompareOperation creates a compare operation from configuration
func createCompareOperation(cfg *config.Config, dir1, dir2 string) (*models.CompareOperation, error) {
	bandwidth := cfg.Performance.BandwidthLimit
	if compareFlags.Bandwidth != "" {
		parsed, err := parseBandwidth(compareFlags.Bandwidth)
		if err != nil {
			return nil, err
		}
		bandwidth = parsed
	}

	operation := &models.CompareOperation{
		ID:              uuid.New().String(),
		Dir1Path:        dir1,
		Dir2Path:        dir2,
		SkipHidden:      cfg.Compare.SkipHidden,
		Relative:        cfg.Compare.Relative,
		Sort:            cfg.Compare.Sort,
		Selection:       selectionFromFlags(),
		ExcludePatterns: cfg.Exclude,
		Algorithm:       cfg.Compare.Algorithm,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		BufferSize:      cfg.Performance.BufferSize,
		BandwidthLimit:  bandwidth,
		CreatedAt:       time.Now(),
	}

	if err := operation.Validate(); err != nil {
		return nil, err
	}

	return operation, nil
}

// selectionFromFlags maps the selection flags to a partition selection.
// No flag means everything is reported.
func selectionFromFlags() models.Selection {
	sel := models.Selection{
		Intersection: compareFlags.Intersection,
		Dir1Only:     compareFlags.Dir1Only,
		Dir2Only:     compareFlags.Dir2Only,
	}
	if !sel.Any() {
		return models.SelectAll()
	}
	return sel
}

// parseBandwidth parses a human bandwidth value like "10M" or "1G" into
// bytes per second.
func parseBandwidth(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, nil
	}

	multiplier := int64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "G")
	}

	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bandwidth value: %s", s)
	}
	if value < 0 {
		return 0, fmt.Errorf("bandwidth cannot be negative: %s", s)
	}

	return value * multiplier, nil
}
