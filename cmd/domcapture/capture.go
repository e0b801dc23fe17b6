package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ankek/domcapture/internal/capture"
	"github.com/ankek/domcapture/internal/dom"
	"github.com/ankek/domcapture/internal/renderer"
	"github.com/ankek/domcapture/internal/snapshot"
	"github.com/ankek/domcapture/internal/surface"
	"github.com/ankek/domcapture/internal/validation"
)

// defaultTarget captures the whole document
const defaultTarget = "body"

func newCaptureCmd(a *app) *cobra.Command {
	var (
		source  string
		targets []string
		out     string
		format  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture elements of a DOM snapshot",
		Long: `Capture renders elements of a snapshot with the built-in painter.

Each --target is a selector (#id, .class, tag, tag#id, tag.class). Targets
html and body capture the whole document. With more than one target the
captures run concurrently and are written to <out>-1.<ext>, <out>-2.<ext>, ...

Examples:
  # Capture the whole page
  domcapture capture --snapshot page.yaml --out page.png

  # Capture two elements at 1x scale on a transparent background
  domcapture capture --snapshot page.yaml --target '#card' --target header \
    --scale 1 --background '' --out shot.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateSnapshotSource(source); err != nil {
				return err
			}
			if len(targets) == 0 {
				targets = []string{defaultTarget}
			}

			enc, err := validation.OutputFormat(out, format, a.cfg.Output.Format)
			if err != nil {
				return err
			}
			paths := outputPaths(a.outputPath(out), enc, len(targets))
			for _, p := range paths {
				if err := validation.ValidateOutputPath(p); err != nil {
					return err
				}
			}

			opts, err := a.resolveOptions(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			page, err := snapshot.Load(ctx, source)
			if err != nil {
				return err
			}
			doc, err := page.Build()
			if err != nil {
				return err
			}

			elements := make([]*dom.Element, len(targets))
			for i, sel := range targets {
				el := doc.Query(sel)
				if el == nil {
					return fmt.Errorf("no element matches %q", sel)
				}
				elements[i] = el
			}

			painter := renderer.NewPainter()

			results := make([]captureResult, len(elements))
			g, gctx := errgroup.WithContext(ctx)
			for i, el := range elements {
				capturer := a.capturer(dom.Environment{}, painter, targets[i])
				g.Go(func() error {
					res, err := a.captureTo(gctx, capturer, el, opts, targets[i], paths[i], enc)
					results[i] = res
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if summary {
				fmt.Fprintln(cmd.OutOrStdout(), renderSummary(results))
				return nil
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "snapshot", "s", "", "snapshot file or http(s) URL")
	cmd.Flags().StringArrayVarP(&targets, "target", "t", nil, "element selector, repeatable (default: body)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output image path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: png, jpeg, bmp, tiff (default: from extension)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a table of captures instead of output paths")
	_ = cmd.MarkFlagRequired("snapshot")
	_ = cmd.MarkFlagRequired("out")
	addOptionFlags(cmd)

	return cmd
}

// captureResult describes one written capture
type captureResult struct {
	Target string
	Path   string
	Width  int
	Height int
	Format surface.Format
}

// captureTo captures el and writes the surface to path.
func (a *app) captureTo(ctx context.Context, capturer *capture.Capturer, el *dom.Element, opts *capture.Options, target, path string, format surface.Format) (captureResult, error) {
	s, err := capturer.CaptureAndWait(ctx, el, opts)
	if err != nil {
		return captureResult{}, fmt.Errorf("capture %s: %w", target, err)
	}
	if err := s.WriteFile(path, format); err != nil {
		return captureResult{}, fmt.Errorf("capture %s: %w", target, err)
	}

	b := s.Bounds()
	a.logger.Info("wrote capture", "target", target, "path", path, "width", b.Dx(), "height", b.Dy())
	return captureResult{Target: target, Path: path, Width: b.Dx(), Height: b.Dy(), Format: format}, nil
}

func renderSummary(results []captureResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Target", "Path", "Size", "Format"})
	for _, r := range results {
		t.AppendRow(table.Row{
			r.Target,
			r.Path,
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Format,
		})
	}
	return t.Render()
}

// outputPath places relative paths under the configured output directory.
func (a *app) outputPath(path string) string {
	if a.cfg.Output.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.cfg.Output.Dir, path)
}

// outputPaths names one file per capture. A single capture uses path as
// given, adding the format extension when path has none. Several captures
// are numbered from 1 before the extension.
func outputPaths(path string, format surface.Format, n int) []string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	if ext == "" {
		ext = format.Extension()
	}

	if n == 1 {
		return []string{base + ext}
	}
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s-%d%s", base, i+1, ext)
	}
	return paths
}
