package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/job-autofill/internal/autofill"
	"github.com/jonathan/job-autofill/internal/browser"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/profile"
	"github.com/jonathan/job-autofill/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	fillURL         string
	fillInFrame     bool
	fillOutDir      string
	fillDriver      string
	fillJSON        bool
	fillConcurrency int
)

var fillCmd = &cobra.Command{
	Use:   "fill [page.html ...]",
	Short: "Fill an application form",
	Long: `Fill an application form with the saved profile.

With HTML files as arguments each file is filled offline; --url then names the
address the pages were saved from, which selects the site strategy. Filled
copies are written to --out.

With only --url the page is opened in a headless browser, filled in place, and
the writes are replayed with input, change and blur events.`,
	Example: `  autofill fill --url https://boards.greenhouse.io/acme/jobs/123
  autofill fill --url https://jobs.lever.co/acme/1/apply --out filled saved.html`,
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillURL, "url", "u", "", "Page URL (required for live fills)")
	fillCmd.Flags().BoolVar(&fillInFrame, "in-frame", false, "Treat the page as an embedded form frame")
	fillCmd.Flags().StringVarP(&fillOutDir, "out", "o", "filled", "Output directory for filled HTML files")
	fillCmd.Flags().StringVar(&fillDriver, "driver", "", "Live browser driver (chromedp or rod)")
	fillCmd.Flags().BoolVar(&fillJSON, "json", false, "Print fill reports as JSON")
	fillCmd.Flags().IntVar(&fillConcurrency, "concurrency", 4, "Files filled in parallel")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && fillURL == "" {
		return errors.New("give HTML files to fill or --url for a live page")
	}

	ctx := cmd.Context()
	store, release, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer release()

	// Loaded once; every pass reads the same profile.
	p, err := profile.Load(ctx, store)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return fillLive(ctx, p)
	}
	return fillFiles(ctx, p, args)
}

func fillLive(ctx context.Context, p *types.Profile) error {
	session, err := browser.Open(ctx, browser.Options{
		Driver:   browser.Driver(settings.Driver),
		Timeout:  settings.BrowserTimeout.Std(),
		Headless: !settings.Headful,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	report, err := browser.FillPage(ctx, session, fillURL, p, browser.FillOptions{
		IframeRecheckDelay: settings.IframeRecheckDelay.Std(),
		InFrame:            fillInFrame,
		Logger:             logger,
	})
	if err != nil && !browser.IsBlocked(err) {
		return err
	}
	return printReports([]fileReport{{Source: fillURL, Report: report}})
}

// fileReport pairs a report with the page it came from.
type fileReport struct {
	Source string           `json:"source"`
	Output string           `json:"output,omitempty"`
	Report types.FillReport `json:"report"`
}

func fillFiles(ctx context.Context, p *types.Profile, paths []string) error {
	if err := os.MkdirAll(fillOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]fileReport, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, fillConcurrency))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := fillFile(gctx, p, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return printReports(results)
}

func fillFile(ctx context.Context, p *types.Profile, path string) (fileReport, error) {
	start := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		return fileReport{}, fmt.Errorf("failed to read page: %w", err)
	}
	doc, err := dom.Parse(string(content))
	if err != nil {
		return fileReport{}, err
	}

	res := fileReport{Source: path}
	res.Report, err = autofill.Run(ctx, autofill.Page{Doc: doc, URL: fillURL, InFrame: fillInFrame}, p, logger.With(zap.String("file", path)))
	var blocked *autofill.BlockedContextError
	if errors.As(err, &blocked) {
		return res, nil
	}
	if err != nil {
		return fileReport{}, err
	}

	filled, err := doc.HTML()
	if err != nil {
		return fileReport{}, err
	}
	res.Output = outputPath(fillOutDir, path)
	if err := os.WriteFile(res.Output, []byte(filled), 0o644); err != nil {
		return fileReport{}, fmt.Errorf("failed to write filled page: %w", err)
	}
	logger.Debug("filled page",
		zap.String("file", path),
		zap.Int("writes", len(res.Report.Mutations)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

// outputPath names the filled copy of path inside dir.
func outputPath(dir, path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".filled"+ext)
}

func printReports(results []fileReport) error {
	if fillJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printer := observability.NewPrinter(os.Stdout)
	for i := range results {
		printer.PrintReport(results[i].Source, &results[i].Report)
		if results[i].Output != "" {
			fmt.Printf("→ %s\n", results[i].Output)
		}
	}
	return nil
}
