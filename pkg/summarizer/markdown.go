package summarizer

import (
	"fmt"
	"strings"
)

// maxListedFiles caps the file list; long continuous runs produce thousands.
const maxListedFiles = 20

// Translator maps an English label to the display language.
type Translator func(key string) string

// MarkdownFormatter renders a Summary as Markdown.
type MarkdownFormatter struct {
	t       Translator
	version string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		t: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.t

	fmt.Fprintf(&b, "# %s\n\n", t("Capture Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	if s.Settings.Source != "" {
		row(&b, t("Source"), s.Settings.Source)
	}
	if s.Settings.Device != "" {
		row(&b, t("Device"), s.Settings.Device)
	}
	row(&b, t("Camera"), s.Settings.Camera)
	row(&b, t("Image Format"), s.Settings.Format)
	if s.Settings.NumPictures == 0 {
		row(&b, t("Pictures"), t("Continuous"))
	} else {
		row(&b, t("Pictures"), fmt.Sprintf("%d", s.Settings.NumPictures))
	}
	row(&b, t("Delay"), s.Settings.Delay.String())
	row(&b, t("Output Directory"), s.Settings.OutputPath)
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Results"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	row(&b, t("State"), t(s.Results.State))
	row(&b, t("Attempts"), fmt.Sprintf("%d", s.Results.Attempts))
	row(&b, t("Saved"), fmt.Sprintf("%d", s.Results.Saved))
	row(&b, t("Dropped"), fmt.Sprintf("%d", s.Results.Dropped))
	row(&b, t("Failed"), fmt.Sprintf("%d", s.Results.Failed))
	row(&b, t("Duration"), s.Results.Duration.Round(1e6).String())
	if s.Results.Bytes > 0 {
		row(&b, t("Total Size"), formatBytes(s.Results.Bytes))
	}
	b.WriteString("\n")

	if len(s.Files) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Files"))
		for i, path := range s.Files {
			if i == maxListedFiles {
				fmt.Fprintf(&b, "- ... %s\n", fmt.Sprintf(t("and %d more"), len(s.Files)-maxListedFiles))
				break
			}
			fmt.Fprintf(&b, "- `%s`\n", path)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	if f.version != "" {
		fmt.Fprintf(&b, "kinectlapse %s\n", f.version)
	} else {
		b.WriteString("kinectlapse\n")
	}

	return b.String()
}

func row(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", key, value)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

var _ Formatter = (*MarkdownFormatter)(nil)
