package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dirdrill/dirdrill/internal/config"
	"github.com/dirdrill/dirdrill/internal/platform"
	"github.com/dirdrill/dirdrill/internal/progress"
	"github.com/dirdrill/dirdrill/internal/report"
	"github.com/dirdrill/dirdrill/internal/scanner"
	"github.com/dirdrill/dirdrill/internal/transcript"
	"github.com/dirdrill/dirdrill/internal/ui"
	"github.com/dirdrill/dirdrill/pkg/utils"
)

var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath   string
	startPath    string
	maxDepth     int
	top          int
	maxThreads   int
	physicalOnly bool
	dryRun       bool
	verbose      bool
	outputFmt    string
	noTranscript bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dirdrill",
	Short: "Parallel folder-size analyzer",
	Long: `Dirdrill measures which folders eat your disk. It scans the immediate
children of a start path with a bounded worker pool, ranks them by recursive
size, and repeatedly drills down into the single largest one.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			return err
		}

		platformInfo, err := platform.GetInfo()
		if err != nil {
			return fmt.Errorf("failed to get platform info: %w", err)
		}

		if cfg.DryRun {
			return printScope(cfg, platformInfo)
		}

		var log *transcript.Logger
		if cfg.Transcript {
			log, err = transcript.New(cfg.TranscriptDir, platformInfo.Hostname, time.Now())
			if err != nil {
				return err
			}
			defer log.Close()
		}

		scnr := scanner.New(cfg, platformInfo)

		banner := ui.Banner(cfg.StartPath, cfg.MaxDepth, cfg.Top, cfg.MaxWorkers, cfg.OnlyPhysicalFiles)
		fmt.Println(banner)
		log.Printf("%s", banner)

		live := ui.NewLiveProgress()
		updates := scnr.GetProgressReporter().Subscribe()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for u := range updates {
				live.Update(u)
				if u.Message != "" {
					log.Printf("warning: %s", u.Message)
				} else if cfg.Verbose && u.Phase == progress.PhaseComplete {
					log.Printf("%s", progress.Format(u))
				}
			}
		}()

		result, err := scnr.Drill(context.Background())
		scnr.GetProgressReporter().Unsubscribe(updates)
		<-done
		live.Finish()

		if err != nil {
			log.Printf("fatal: %v", err)
			return err
		}

		log.Printf("scan finished: %s in %d files, %d levels, %d failures, %d unprocessed",
			utils.FormatBytes(result.TotalSize), result.TotalFiles,
			len(result.Levels), len(result.Failures), len(result.Unprocessed))

		rptr := report.New(os.Stdout, parseFormat(outputFmt))
		rptr.SetElevated(platformInfo.Elevated)
		if cfg.MinSize != "" {
			min, err := utils.ParseSize(cfg.MinSize)
			if err != nil {
				return err
			}
			rptr.SetMinSize(min)
		}
		if err := rptr.Render(result); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}

		if log.Path() != "" {
			fmt.Printf("\nTranscript: %s\n", log.Path())
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display current configuration",
	Long:  `Shows the configuration file location and whether it exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("\nTo create one with the defaults:")
			fmt.Println("  dirdrill config init")
		}

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgPath, err := config.EnsureConfigExists()
		if err != nil {
			return err
		}
		fmt.Printf("Config file: %s\n", cfgPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose transcript logging")

	rootCmd.Flags().StringVar(&startPath, "start-path", "", "directory to begin analysis (default: filesystem root)")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "drill-down levels to follow the largest subdirectory (1-100)")
	rootCmd.Flags().IntVar(&top, "top", 0, "largest items to display per level (1-100)")
	rootCmd.Flags().IntVar(&maxThreads, "max-threads", 0, "worker pool bound (1-50)")
	rootCmd.Flags().BoolVar(&physicalOnly, "only-physical-files", true, "exclude cloud-placeholder bytes from totals")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print intended scope without scanning")
	rootCmd.Flags().StringVar(&outputFmt, "output", "summary", "output format (summary, json)")
	rootCmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "skip writing the transcript log file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}

// applyFlags overrides config values with any flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("start-path") {
		cfg.StartPath = startPath
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("top") {
		cfg.Top = top
	}
	if cmd.Flags().Changed("max-threads") {
		cfg.MaxWorkers = maxThreads
	}
	if cmd.Flags().Changed("only-physical-files") {
		cfg.OnlyPhysicalFiles = physicalOnly
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cmd.Flags().Changed("no-transcript") {
		cfg.Transcript = !noTranscript
	}
}

func parseFormat(format string) report.OutputFormat {
	switch format {
	case "json":
		return report.FormatJSON
	default:
		return report.FormatSummary
	}
}

// printScope reports what a real run would do without touching the tree.
func printScope(cfg *config.Config, info *platform.Info) error {
	if _, err := os.Stat(cfg.StartPath); err != nil {
		return fmt.Errorf("start path %q: %w", cfg.StartPath, err)
	}

	excluded := cfg.ExcludeNames
	if len(excluded) == 0 {
		excluded = info.ExcludeNames
	}

	fmt.Println("[DRY RUN] No scanning will be performed.")
	fmt.Printf("  Start path:      %s\n", cfg.StartPath)
	fmt.Printf("  Max depth:       %d\n", cfg.MaxDepth)
	fmt.Printf("  Top per level:   %d\n", cfg.Top)
	fmt.Printf("  Workers:         %d\n", cfg.MaxWorkers)
	fmt.Printf("  Physical sizes:  %v\n", cfg.OnlyPhysicalFiles)
	fmt.Printf("  Hard timeout:    %s\n", cfg.HardTimeout())
	fmt.Printf("  Shallow-only:    %s\n", strings.Join(excluded, ", "))
	if cfg.Transcript {
		fmt.Printf("  Transcript:      %s\n", transcript.FileName(info.Hostname, time.Now()))
	}
	if !info.Elevated {
		fmt.Println("  Note: not elevated; some system paths may be inaccessible.")
	}
	return nil
}
