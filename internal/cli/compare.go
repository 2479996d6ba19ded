package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/filematch/filematch/pkg/fingerprint"
	"github.com/filematch/filematch/pkg/hasher"
	"github.com/filematch/filematch/pkg/logging"
	"github.com/filematch/filematch/pkg/output"
	"github.com/filematch/filematch/pkg/ratelimit"
)

// CompareFlags holds compare command flags
type CompareFlags struct {
	SkipHidden   bool
	Relative     bool
	Sort         bool
	Intersection bool
	Dir1Only     bool
	Dir2Only     bool
	Algorithm    string
	Workers      int
	Bandwidth    string
	Exclude      []string
	Output       string
	Report       string
	ReportFormat string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var compareFlags CompareFlags

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <dir1> <dir2>",
		Short: "Compare two directory trees by file content",
		Long: `Compare two directory trees by cryptographic content fingerprint.
Files match when their content digests are equal, regardless of name,
path or modification time. The result is partitioned into files present
in both trees, files only in the first tree, and files only in the
second tree.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompare,
	}

	cmd.Flags().BoolVar(&compareFlags.SkipHidden, "skip-hidden", false, "skip hidden files and directories (dotfiles)")
	cmd.Flags().BoolVar(&compareFlags.Relative, "relative", false, "display paths relative to their tree root")
	cmd.Flags().BoolVar(&compareFlags.Sort, "sort", false, "sort listed paths alphabetically")

	// Partition selection; all three are reported when none is given
	cmd.Flags().BoolVarP(&compareFlags.Intersection, "intersection", "i", false, "report files present in both trees")
	cmd.Flags().BoolVar(&compareFlags.Dir1Only, "dir1-only", false, "report files present only in the first tree")
	cmd.Flags().BoolVar(&compareFlags.Dir2Only, "dir2-only", false, "report files present only in the second tree")

	cmd.Flags().StringVar(&compareFlags.Algorithm, "algorithm", "", "hash algorithm: blake3, sha256")
	cmd.Flags().IntVarP(&compareFlags.Workers, "workers", "p", 0, "number of hashing workers per tree (default: number of CPUs)")
	cmd.Flags().StringVarP(&compareFlags.Bandwidth, "bandwidth", "b", "", "aggregate read bandwidth limit (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringSliceVar(&compareFlags.Exclude, "exclude", []string{}, "glob patterns to exclude")
	cmd.Flags().StringVarP(&compareFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&compareFlags.Report, "report", "", "write comparison report to file")
	cmd.Flags().StringVar(&compareFlags.ReportFormat, "report-format", "human", "report file format: human, json")

	// Logging flags
	cmd.Flags().StringVar(&compareFlags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&compareFlags.LogFormat, "log-format", "text", "log format: text, json")
	cmd.Flags().StringVar(&compareFlags.LogLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dir1, dir2 := args[0], args[1]

	// Validate roots
	if err := validateCompareRoots(dir1, dir2); err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg, cmd)

	// Create compare operation
	operation, err := createCompareOperation(cfg, dir1, dir2)
	if err != nil {
		return fmt.Errorf("failed to create compare operation: %w", err)
	}

	// Create hasher, with rate limiting when a bandwidth budget is set
	h, err := hasher.New(operation.Algorithm, operation.BufferSize)
	if err != nil {
		return err
	}
	if limiter := ratelimit.NewLimiter(operation.BandwidthLimit); limiter != nil {
		h.SetReaderWrapper(limiter.Wrap)
	}

	// Create output formatter
	var formatter output.Formatter
	switch cfg.Output.Format {
	case "json":
		formatter = output.NewJSONFormatter()
	default:
		if cfg.Output.Progress && !cfg.Output.Quiet {
			formatter = output.NewProgressFormatter()
		} else {
			formatter = output.NewHumanFormatter()
		}
	}

	// Create logger
	logger, err := createLogger(compareFlags.LogFile, compareFlags.LogFormat, compareFlags.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	// Run the comparison
	engine := fingerprint.NewEngine(h, formatter, logger, operation)
	report, err := engine.Run(ctx)
	if err != nil {
		formatter.Error(err)
		os.Exit(report.Status.ExitCode())
	}

	if err := formatter.Complete(report); err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}

	// Write report file if requested
	if compareFlags.Report != "" {
		if err := output.WriteReport(report, compareFlags.Report, compareFlags.ReportFormat); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	// Exit with appropriate code
	os.Exit(report.Status.ExitCode())
	return nil
}

// createLogger creates a logger based on configuration
func createLogger(logFile, logFormat, logLevel string) (logging.Logger, error) {
	if logFile == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch logFormat {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	config := logging.FileLoggerConfig{
		Path:       logFile,
		Format:     format,
		Level:      logging.ParseLevel(logLevel),
		MaxSize:    10 * 1024 * 1024, // 10 MB
		MaxBackups: 5,
	}

	return logging.NewFileLogger(config)
}
