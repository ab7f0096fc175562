package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts the summary to markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Decode Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Input\n\n")
	fmt.Fprintf(&b, "- Path: %s\n", summary.Input.Path)
	fmt.Fprintf(&b, "- Container: %s\n", summary.Input.Container)
	if summary.Input.Codec != "" {
		fmt.Fprintf(&b, "- Codec: %s\n", summary.Input.Codec)
	}
	fmt.Fprintf(&b, "- Mode: %s\n\n", summary.Input.Mode)

	b.WriteString("## Decode\n\n")
	fmt.Fprintf(&b, "- Frames: %d\n", summary.Decode.Frames)
	fmt.Fprintf(&b, "- Units: %d\n", summary.Decode.Units)
	if summary.Decode.Renegotiated > 0 {
		fmt.Fprintf(&b, "- Format changes: %d\n", summary.Decode.Renegotiated)
	}
	fmt.Fprintf(&b, "- Duration: %d ms\n", summary.Decode.DurationMs)
	if summary.Decode.DurationMs > 0 {
		fps := float64(summary.Decode.Frames) * 1000 / float64(summary.Decode.DurationMs)
		fmt.Fprintf(&b, "- Throughput: %.1f fps\n", fps)
	}
	if summary.Decode.WorkerThreads > 0 {
		fmt.Fprintf(&b, "- Worker threads: %d\n", summary.Decode.WorkerThreads)
	}
	b.WriteString("\n")

	b.WriteString("## Output\n\n")
	fmt.Fprintf(&b, "- Path: %s\n", summary.Output.Path)
	fmt.Fprintf(&b, "- Resolution: %dx%d\n", summary.Output.Width, summary.Output.Height)
	if summary.Output.FPSNum > 0 {
		fmt.Fprintf(&b, "- Frame rate: %d/%d\n", summary.Output.FPSNum, summary.Output.FPSDen)
	}
	fmt.Fprintf(&b, "- Size: %s\n", formatBytes(summary.Output.FileSize))

	if summary.Preview != nil {
		b.WriteString("\n## Preview\n\n")
		fmt.Fprintf(&b, "- Path: %s\n", summary.Preview.Path)
		fmt.Fprintf(&b, "- Frames: %d\n", summary.Preview.Frames)
		fmt.Fprintf(&b, "- Sheet: %dx%d\n", summary.Preview.SheetWidth, summary.Preview.SheetHeight)
	}

	return b.String()
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
