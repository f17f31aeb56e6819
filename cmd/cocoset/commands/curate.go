package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cocoset/pkg/cache"
	"cocoset/pkg/core"
	"cocoset/pkg/export"
	"cocoset/pkg/license"
	"cocoset/pkg/prompt"
	"cocoset/pkg/report"
	"cocoset/pkg/source"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newCurateCommand() *cobra.Command {
	var (
		manifestPath  string
		datasetName   string
		outputDir     string
		classesFile   string
		cacheDir      string
		useDefaults   bool
		licenseReport bool
		skipMedia     bool
		shuffleSeed   int64
	)

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Interactively curate and export a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestResolved := resolveString(manifestPath, appConfig.Manifest)
			if manifestResolved == "" {
				return errors.New("manifest path is required")
			}
			classesResolved := resolveString(classesFile, appConfig.ClassesFile)
			if classesResolved == "" {
				classesResolved = "available_classes.txt"
			}

			in := cmd.InOrStdin()
			out := cmd.OutOrStdout()
			prompter := prompt.New(in, out)

			name := datasetName
			if name == "" {
				var err error
				name, err = prompter.String("Enter dataset name:")
				if err != nil {
					return err
				}
			}

			baseDir := resolveString(outputDir, appConfig.OutputDir)
			if baseDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return err
				}
				baseDir = wd
			}
			destDir := filepath.Join(baseDir, name)
			if err := os.MkdirAll(destDir, 0o755); err != nil {
				return err
			}

			clearCache, err := prompter.Confirm("Do you want to clear existing cached data?")
			if err != nil {
				return err
			}
			if clearCache {
				c, err := cache.New(resolveString(cacheDir, appConfig.CacheDir))
				if err != nil {
					return err
				}
				removed, failed := c.Clear(logger)
				fmt.Fprintf(out, "Cache cleared: %d removed, %d failed\n", removed, failed)
			}

			req, err := resolveRequest(prompter, useDefaults, classesResolved)
			if err != nil {
				return err
			}

			src := &source.ManifestSource{Path: manifestResolved, Seed: shuffleSeed}

			plan, err := core.Plan(req.TotalImages, req.TrainFraction, req.ValFraction, req.TestFraction, req.Ratio)
			if err != nil {
				return err
			}
			progress := newProgressBar(progressWriter(cmd), plan.Total())

			fmt.Fprintln(out, "Loading dataset...")
			curator := core.Curator{
				Source:   src,
				Exporter: export.DirExporter{CopyMedia: !skipMedia},
				Logger:   logger,
				Progress: func(assigned, planned int) {
					progress.Update(assigned)
				},
			}
			ds, err := curator.Run(cmd.Context(), req, destDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "Dataset exported successfully!")

			wantReport := licenseReport
			if !wantReport {
				wantReport, err = prompter.Confirm("Do you want a text file with license information?")
				if err != nil {
					return err
				}
			}
			if wantReport {
				if err := writeLicenseReport(ds); err != nil {
					return err
				}
				fmt.Fprintln(out, "License report written to license_info.txt")
			}

			for _, split := range core.Splits() {
				fmt.Fprintf(out, "%s: %d images\n", split, ds.Len(split))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the corpus manifest (json or jsonl)")
	cmd.Flags().StringVar(&datasetName, "name", "", "dataset name (prompted when empty)")
	cmd.Flags().StringVar(&outputDir, "out", "", "directory the dataset folder is created in (default: working directory)")
	cmd.Flags().StringVar(&classesFile, "classes-file", "", "reference file of valid class names")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache directory to clear")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "use default settings without prompting")
	cmd.Flags().BoolVar(&licenseReport, "license-report", false, "write license_info.txt without prompting")
	cmd.Flags().BoolVar(&skipMedia, "skip-media", false, "export annotation indexes only, without copying images")
	cmd.Flags().Int64Var(&shuffleSeed, "seed", 0, "shuffle seed (0 = random)")

	return cmd
}

func resolveRequest(prompter *prompt.Prompter, useDefaults bool, classesFile string) (core.DatasetRequest, error) {
	if useDefaults {
		return appConfig.DefaultRequest()
	}
	wantDefaults, err := prompter.Confirm("Do you want to use default settings?")
	if err != nil {
		return core.DatasetRequest{}, err
	}
	if wantDefaults {
		return appConfig.DefaultRequest()
	}
	return prompter.Request(classesFile)
}

func writeLicenseReport(ds *core.PartitionedDataset) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(wd, "license_info.txt"))
	if err != nil {
		return err
	}
	defer file.Close()

	return report.TextReporter{Writer: file}.Report(license.Tally(ds))
}

type progressBar struct {
	writer io.Writer
	total  int
	start  time.Time
	isTTY  bool
}

func newProgressBar(writer io.Writer, total int) *progressBar {
	return &progressBar{
		writer: writer,
		total:  total,
		start:  time.Now(),
		isTTY:  isTerminal(writer),
	}
}

func (p *progressBar) Update(assigned int) {
	width := 30
	if p.total <= 0 {
		return
	}

	ratio := float64(assigned) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))

	bar := strings.Repeat("=", filled) + strings.Repeat(".", width-filled)
	percent := int(ratio * 100)
	elapsed := time.Since(p.start).Truncate(time.Second)

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	line := fmt.Sprintf("[%s] %3d%% (%d/%d) %s", barStyle.Render(bar), percent, assigned, p.total, elapsed)
	if p.isTTY {
		fmt.Fprintf(p.writer, "\r%s", line)
	} else {
		fmt.Fprintf(p.writer, "%s\n", line)
	}

	if assigned >= p.total {
		fmt.Fprintln(p.writer)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func progressWriter(cmd *cobra.Command) io.Writer {
	stderr := cmd.ErrOrStderr()
	stdout := cmd.OutOrStdout()

	if isTerminal(stderr) {
		return stderr
	}
	if isTerminal(stdout) {
		return stdout
	}
	return stderr
}
