package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ankek/domcapture/internal/browser"
	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/dom"
	"github.com/ankek/domcapture/internal/renderer"
	"github.com/ankek/domcapture/internal/snapshot"
	"github.com/ankek/domcapture/internal/validation"
)

// Pipelines selectable with browse --pipeline
const (
	pipelineScreenshot = "screenshot"
	pipelinePaint      = "paint"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		url          string
		target       string
		out          string
		format       string
		pipeline     string
		saveSnapshot string
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Capture an element of a live page in headless Chrome",
		Long: `Browse loads a page in headless Chrome, snapshots its layout and captures
one element.

The screenshot pipeline clips a native browser screenshot to the capture
rectangle. The paint pipeline renders the snapshot with the built-in painter,
the same way the capture command does.

Examples:
  domcapture browse --url https://example.com --target body --out page.png
  domcapture browse --url https://example.com --target '#main' \
    --pipeline paint --save-snapshot main.yaml --out main.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pipeline != pipelineScreenshot && pipeline != pipelinePaint {
				return fmt.Errorf("unknown pipeline %q (supported: %s, %s)", pipeline, pipelineScreenshot, pipelinePaint)
			}
			if err := validation.ValidateSnapshotSource(url); err != nil {
				return err
			}

			enc, err := validation.OutputFormat(out, format, a.cfg.Output.Format)
			if err != nil {
				return err
			}
			path := outputPaths(a.outputPath(out), enc, 1)[0]
			if err := validation.ValidateOutputPath(path); err != nil {
				return err
			}
			if saveSnapshot != "" {
				if err := validation.ValidateOutputPath(saveSnapshot); err != nil {
					return err
				}
			}

			opts, err := a.resolveOptions(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			session, err := browser.NewSession(ctx, browser.Options{
				ExecPath:     a.cfg.Browser.ExecPath,
				Headless:     a.cfg.Browser.Headless,
				WindowWidth:  a.cfg.Browser.WindowWidth,
				WindowHeight: a.cfg.Browser.WindowHeight,
				Timeout:      a.cfg.Browser.Timeout(),
			})
			if err != nil {
				return err
			}
			defer session.Close()

			a.logger.Debug("navigating", "url", url)
			if err := session.Navigate(ctx, url); err != nil {
				return err
			}
			page, err := session.Snapshot(ctx)
			if err != nil {
				return err
			}
			if saveSnapshot != "" {
				if err := writeSnapshot(saveSnapshot, page); err != nil {
					return err
				}
				a.logger.Info("wrote snapshot", "path", saveSnapshot)
			}

			doc, err := page.Build()
			if err != nil {
				return err
			}
			el := doc.Query(target)
			if el == nil {
				return fmt.Errorf("no element matches %q", target)
			}

			var p capture.Pipeline = browser.NewPipeline(session)
			if pipeline == pipelinePaint {
				p = renderer.NewPainter()
			}

			capturer := a.capturer(dom.Environment{}, p, target)
			if _, err := a.captureTo(ctx, capturer, el, opts, target, path, enc); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "page URL")
	cmd.Flags().StringVarP(&target, "target", "t", defaultTarget, "element selector")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png, jpeg, bmp, tiff (default: from extension)")
	cmd.Flags().StringVar(&pipeline, "pipeline", pipelineScreenshot, "render pipeline: screenshot or paint")
	cmd.Flags().StringVar(&saveSnapshot, "save-snapshot", "", "also write the page snapshot as YAML to this path")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("out")
	addOptionFlags(cmd)

	return cmd
}

func writeSnapshot(path string, page *snapshot.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := page.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
