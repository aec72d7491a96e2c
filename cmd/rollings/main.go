// Command rollings mirrors a source directory tree into a destination
// tree, copying only files whose content digest differs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Kuchukov/Rolling-s/internal/config"
	"github.com/Kuchukov/Rolling-s/internal/digest"
	"github.com/Kuchukov/Rolling-s/internal/event"
	"github.com/Kuchukov/Rolling-s/internal/filter"
	"github.com/Kuchukov/Rolling-s/internal/mirror"
	"github.com/Kuchukov/Rolling-s/internal/stats"
	"github.com/Kuchukov/Rolling-s/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// excludeFlag is a custom pflag.Value that appends --exclude patterns
// in CLI order.
type excludeFlag struct {
	patterns *[]string
}

func (*excludeFlag) String() string { return "" }
func (*excludeFlag) Type() string   { return "string" }

func (f *excludeFlag) Set(val string) error {
	*f.patterns = append(*f.patterns, val)
	return nil
}

//nolint:gocyclo,revive // cognitive-complexity: main CLI entry point owns all flag handling
func run() int {
	var (
		algorithmStr string
		blockSize    int
		excludes     []string
		keepGoing    bool
		dryRun       bool
		verbose      bool
		quiet        bool
		noProgress   bool
		logFile      string
		showVersion  bool
	)

	rootCmd := &cobra.Command{
		Use:   "rollings [flags] <source-dir> <dest-dir>",
		Short: "Mirror a directory tree, copying only content that changed",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "rollings %s\n", version)
				return nil
			}

			src := stripQuotes(args[0])
			dst := stripQuotes(args[1])

			// Load optional config file.
			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			applyConfigDefaults(cmd, cfg.Defaults, &algorithmStr, &blockSize, &keepGoing, &excludes)

			algo, err := digest.Parse(algorithmStr)
			if err != nil {
				return err
			}
			if blockSize <= 0 {
				return fmt.Errorf("invalid --block-size: must be positive, got %d", blockSize)
			}

			excludeSet, err := filter.Compile(excludes)
			if err != nil {
				return err
			}

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			slog.SetDefault(slog.New(logHandler))

			if dryRun {
				slog.Info("dry run mode")
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			collector := stats.NewCollector()
			events := make(chan event.Event, 256)

			// When --log is set, tee events through a logging goroutine
			// that writes structured records before forwarding them.
			presenterEvents := (<-chan event.Event)(events)
			if logFile != "" {
				teed := make(chan event.Event, 256)
				go func() {
					for ev := range events {
						attrs := []slog.Attr{
							slog.String("type", ev.Type.String()),
							slog.String("path", ev.Path),
							slog.Int64("size", ev.Size),
						}
						if ev.Error != nil {
							attrs = append(attrs, slog.String("error", ev.Error.Error()))
						}
						slog.LogAttrs(context.Background(), slog.LevelInfo, "rollings.event", attrs...)
						teed <- ev
					}
					close(teed)
				}()
				presenterEvents = teed
			}

			presenter := ui.NewPresenter(ui.Config{
				Writer:     os.Stdout,
				ErrWriter:  os.Stderr,
				Stats:      collector,
				Quiet:      quiet,
				Verbose:    verbose,
				NoProgress: noProgress,
			})

			var presenterErr error
			var presenterWg sync.WaitGroup
			presenterWg.Add(1)
			go func() {
				defer presenterWg.Done()
				presenterErr = presenter.Run(presenterEvents)
			}()

			slog.Debug("starting mirror run",
				"src", src,
				"dst", dst,
				"algorithm", algo.String(),
				"block_size", blockSize,
				"excludes", excludeSet.Len(),
			)

			result := mirror.Run(ctx, mirror.Config{
				SrcRoot:   src,
				DstRoot:   dst,
				Algorithm: algo,
				BlockSize: blockSize,
				Excludes:  excludeSet,
				KeepGoing: keepGoing,
				DryRun:    dryRun,
				Events:    events,
				Stats:     collector,
			})
			stop()
			close(events)
			presenterWg.Wait()
			if presenterErr != nil {
				fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
			}

			if !quiet {
				if summary := presenter.Summary(); summary != "" {
					fmt.Fprintln(os.Stderr, summary)
				}
			}

			if result.Err != nil {
				slog.Error("mirror run failed", "error", result.Err)
				if result.Stats.FilesCopied > 0 {
					return &exitError{code: 1} // partial failure
				}
				return &exitError{code: 2} // total failure
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().
		StringVar(&algorithmStr, "algorithm", "sha256", "digest algorithm (sha256 or blake3)")
	rootCmd.Flags().
		IntVar(&blockSize, "block-size", 4096, "copy transfer block size in bytes")
	rootCmd.Flags().
		Var(&excludeFlag{patterns: &excludes}, "exclude", "skip files whose path matches regex PATTERN (repeatable)")
	rootCmd.Flags().
		BoolVar(&keepGoing, "keep-going", false, "continue past per-file errors and report them at the end")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without writing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable periodic progress lines")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// applyConfigDefaults applies config file defaults for flags not
// explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	algorithm *string,
	blockSize *int,
	keepGoing *bool,
	excludes *[]string,
) {
	if !cmd.Flags().Changed("algorithm") && defaults.Algorithm != nil {
		*algorithm = *defaults.Algorithm
	}
	if !cmd.Flags().Changed("block-size") && defaults.BlockSize != nil {
		*blockSize = *defaults.BlockSize
	}
	if !cmd.Flags().Changed("keep-going") && defaults.KeepGoing != nil {
		*keepGoing = *defaults.KeepGoing
	}
	if !cmd.Flags().Changed("exclude") && len(defaults.Exclude) > 0 {
		*excludes = append(*excludes, defaults.Exclude...)
	}
}

// stripQuotes removes one pair of surrounding double quotes, which
// Windows shells sometimes leave on quoted paths.
func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
