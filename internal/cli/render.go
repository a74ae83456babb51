package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotline/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "svg", "json"
	width      float64  // plot width in pixels for charts without an explicit x length
	height     float64  // plot height in pixels for charts without an explicit y length
	hover      bool     // embed the hover hint script into SVG output
	background string   // background fill color for SVG output
	noCache    bool     // disable the render cache entirely
	refresh    bool     // bypass the cache for this run
}

// renderCommand creates the render command for generating chart output.
//
// Default settings:
//   - format: svg
//   - width: 800px, height: 600px (only for charts without explicit lengths)
//   - hover: true (embed the hover tooltip script)
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		hover:  true,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart document to SVG or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "plot width for charts without an explicit x length")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "plot height for charts without an explicit y length")
	cmd.Flags().BoolVar(&opts.hover, "hover", opts.hover, "embed hover tooltip script in SVG output")
	cmd.Flags().StringVar(&opts.background, "background", "", "background fill color for SVG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender executes the pipeline for the input file and writes each
// requested format to disk.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		Input:      input,
		Width:      opts.width,
		Height:     opts.height,
		Formats:    opts.formats,
		Hover:      opts.hover,
		Background: opts.background,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %s", input))

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.SeriesCount, result.Stats.PointCount,
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// outputPath derives the output file path for a format.
// With one format, an explicit output path wins as-is; otherwise the
// input name with its extension swapped for the format is used. With
// multiple formats the output (or input) acts as a base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else if ext := filepath.Ext(base); pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		base = strings.TrimSuffix(base, ext)
	}
	return base + "." + format
}
