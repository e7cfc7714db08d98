package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tinovyatkin/writegood/internal/config"
	"github.com/tinovyatkin/writegood/internal/lint"
	"github.com/tinovyatkin/writegood/internal/reporter"
	"github.com/tinovyatkin/writegood/internal/version"
	"github.com/tinovyatkin/writegood/internal/watcher"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check prose files for suggestions",
		ArgsUsage: "[FILE|DIR...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, sarif",
				Value:   "text",
			},
			&cli.StringSliceFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Glob selecting files inside directories (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "exit-zero",
				Usage: "Exit with code 0 even when there are suggestions",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := reporter.ParseFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, logger)
			if err != nil {
				return err
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				paths = []string{"."}
			}
			patterns := cmd.StringSlice("pattern")
			if len(patterns) == 0 {
				patterns = watcher.DefaultPatterns
			}
			files, err := collectFiles(paths, patterns)
			if err != nil {
				return err
			}

			results, sources, err := checkFiles(ctx, files, config.Read(cfg).Options)
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if err := reporter.Write(out, results, reporter.Options{
				Format:      format,
				Color:       config.ColorEnabled(cmd.String("color"), isTerminal(out)),
				Sources:     sources,
				ToolVersion: version.RawVersion(),
			}); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			if n := reporter.Count(results); n > 0 && !cmd.Bool("exit-zero") {
				logger.WithField("suggestions", n).Debug("check: suggestions found")
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// checkFiles analyzes files in parallel. Results keep the order of files.
func checkFiles(ctx context.Context, files []string, opts lint.Options) ([]lint.FileResult, map[string][]byte, error) {
	analyzer, err := newAnalyzer()
	if err != nil {
		return nil, nil, err
	}

	results := make([]lint.FileResult, len(files))
	contents := make([][]byte, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			text := string(data)
			annotations, err := lint.Build(analyzer, text, opts, 0)
			if err != nil {
				return fmt.Errorf("check %s: %w", file, err)
			}
			results[i] = lint.FileResult{
				File:        file,
				Lines:       lint.CountLines(text),
				Annotations: annotations,
			}
			contents[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	sources := make(map[string][]byte, len(files))
	for i, file := range files {
		sources[file] = contents[i]
	}
	return results, sources, nil
}

// collectFiles expands directories with patterns. Explicit files are kept
// as given; the result is sorted and free of duplicates.
func collectFiles(paths, patterns []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		fsys := os.DirFS(p)
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithNoHidden())
			if err != nil {
				return nil, fmt.Errorf("glob %q in %s: %w", pattern, p, err)
			}
			for _, m := range matches {
				if inVendoredDir(m) {
					continue
				}
				files = append(files, filepath.Join(p, filepath.FromSlash(m)))
			}
		}
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func inVendoredDir(rel string) bool {
	for dir := range strings.SplitSeq(rel, "/") {
		if dir == "node_modules" || dir == "vendor" {
			return true
		}
	}
	return false
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
