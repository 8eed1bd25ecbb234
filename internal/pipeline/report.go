package pipeline

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/phantom-wg/phantom-www/internal/asset"
)

// Reporter prints human-readable progress for a run.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter writing to w. A nil w discards output.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

func (r *Reporter) start(themes int, outputDir string) {
	fmt.Fprintf(r.w, "Generating assets for %d themes into %s\n", themes, outputDir)
}

func (r *Reporter) theme(i, n int, slug, name string) {
	fmt.Fprintf(r.w, "\n[%d/%d] %s (%s)\n", i, n, name, slug)
}

func (r *Reporter) svgWritten(master string) {
	fmt.Fprintf(r.w, "  svg    %s\n", master)
}

func (r *Reporter) svgSkipped(master, reason string) {
	fmt.Fprintf(r.w, "  skip   %s (%s)\n", master, reason)
}

func (r *Reporter) svgFailed(master string, err error) {
	fmt.Fprintf(r.w, "  fail   %s (%v)\n", master, err)
}

func (r *Reporter) pack(kind string, res asset.Result) {
	fmt.Fprintf(r.w, "  %-6s %d generated, %d failed\n", kind, res.Generated, res.Failed)
}

func (r *Reporter) warn(msg string) {
	fmt.Fprintf(r.w, "warning: %s\n", msg)
}

func (r *Reporter) summary(s *Summary) {
	fmt.Fprintln(r.w, "\nSummary")
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  SVG files:\t%d generated\t%d skipped\t%d failed\n", s.SVGFiles.Generated, s.SVGFiles.Skipped, s.SVGFiles.Failed)
	fmt.Fprintf(tw, "  Icons:\t%d generated\t%d failed\n", s.Icons.Generated, s.Icons.Failed)
	fmt.Fprintf(tw, "  Logos:\t%d generated\t%d failed\n", s.Logos.Generated, s.Logos.Failed)
	fmt.Fprintf(tw, "  Themes:\t%d\t%s\n", len(s.Themes), strings.Join(s.Themes, ", "))
	tw.Flush() //nolint:errcheck

	if s.ManifestPath != "" {
		fmt.Fprintf(r.w, "Manifest: %s\n", s.ManifestPath)
	}
	fmt.Fprintf(r.w, "Output:   %s\n", s.OutputDir)
}
