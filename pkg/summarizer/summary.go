// Package summarizer provides summary generation for capture runs.
package summarizer

import "time"

// Summary contains all data collected during a capture run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Capture settings
	Settings Settings

	// Outcome
	Results Results

	// Saved image paths, in capture order
	Files []string
}

// Settings contains the run configuration.
type Settings struct {
	Device      string // device node, empty when replaying
	Source      string // "webcam" or "replay"
	Camera      string // "RGB" or "IR"
	Format      string // output image format
	NumPictures int    // 0 = continuous
	Delay       time.Duration
	OutputPath  string
}

// Results contains the counters of a finished run.
type Results struct {
	State    string
	Attempts int
	Saved    int
	Dropped  int
	Failed   int
	Duration time.Duration
	Bytes    int64 // total size of saved files, 0 if unknown
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

// WithGeneratedAt overrides the generation timestamp.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	b.summary.GeneratedAt = t
	return b
}

// WithSettings sets the capture settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResults sets the run outcome.
func (b *Builder) WithResults(results Results) *Builder {
	b.summary.Results = results
	return b
}

// WithFiles sets the saved image paths.
func (b *Builder) WithFiles(files []string) *Builder {
	b.summary.Files = append([]string(nil), files...)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
