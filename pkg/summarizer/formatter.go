package summarizer

import "fmt"

// Formatter renders a Summary as text.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a plain function to Formatter.
type FormatFunc func(summary *Summary) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// StatusLine is a one-line Formatter for logs and the service status.
var StatusLine Formatter = FormatFunc(func(s *Summary) string {
	r := s.Results
	return fmt.Sprintf("%s: %d saved, %d dropped, %d failed in %s",
		r.State, r.Saved, r.Dropped, r.Failed, r.Duration.Round(1e6))
})
