// Package summarizer provides summary generation for decode results.
package summarizer

import "time"

// Summary contains all data collected during a decode run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Input information
	Input InputInfo

	// Decode results
	Decode DecodeInfo

	// Output details
	Output OutputInfo

	// Preview sheet details, if one was rendered
	Preview *PreviewInfo
}

// InputInfo describes the decoded bitstream.
type InputInfo struct {
	Path      string
	Container string // mp4 or annexb
	Codec     string // sample entry name, e.g. hvc1
	Mode      string // packetized or raw
}

// DecodeInfo contains decode run measurements.
type DecodeInfo struct {
	Frames        int
	Units         int
	Renegotiated  int
	DurationMs    int64
	WorkerThreads int
}

// OutputInfo describes the written output stream.
type OutputInfo struct {
	Path     string
	Width    int
	Height   int
	FPSNum   int
	FPSDen   int
	FileSize int64
}

// PreviewInfo describes the rendered contact sheet.
type PreviewInfo struct {
	Path        string
	Frames      int
	SheetWidth  int
	SheetHeight int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input information.
func (b *Builder) WithInput(path, container, codec, mode string) *Builder {
	b.summary.Input = InputInfo{
		Path:      path,
		Container: container,
		Codec:     codec,
		Mode:      mode,
	}
	return b
}

// WithDecode sets decode run information.
func (b *Builder) WithDecode(decode DecodeInfo) *Builder {
	b.summary.Decode = decode
	return b
}

// WithOutput sets output information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithPreview sets preview sheet information.
func (b *Builder) WithPreview(preview PreviewInfo) *Builder {
	b.summary.Preview = &preview
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
