// Package output provides terminal styling for the CLI.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles colors text for the terminal behind a writer. Colors are dropped
// automatically when the writer is not a terminal.
type Styles struct {
	output *termenv.Output
}

// NewStyles returns styles for w.
func NewStyles(w io.Writer) *Styles {
	return &Styles{output: termenv.NewOutput(w)}
}

func (s *Styles) color(text, color string) termenv.Style {
	return s.output.String(text).Foreground(s.output.Color(color))
}

// Success is green and bold.
func (s *Styles) Success(text string) string {
	return s.color(text, "2").Bold().String()
}

// Error is red and bold.
func (s *Styles) Error(text string) string {
	return s.color(text, "1").Bold().String()
}

// Warning is yellow and bold.
func (s *Styles) Warning(text string) string {
	return s.color(text, "3").Bold().String()
}

// Location styles a feed URL or path.
func (s *Styles) Location(text string) string {
	return s.color(text, "6").String()
}

// Account styles an account name.
func (s *Styles) Account(text string) string {
	return s.color(text, "3").String()
}

// Debit styles an amount flowing into an account.
func (s *Styles) Debit(text string) string {
	return s.color(text, "2").String()
}

// Credit styles an amount flowing out of an account.
func (s *Styles) Credit(text string) string {
	return s.color(text, "1").String()
}

// Balance styles a balance, red when it is negative.
func (s *Styles) Balance(text string, negative bool) string {
	if negative {
		return s.Credit(text)
	}
	return s.output.String(text).Bold().String()
}

// Keyword is bold.
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).Bold().String()
}

// Dim is faint.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).Faint().String()
}

// Timing dims a duration, or colors it red when the step was slow.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.color(text, "1").String()
	}
	return s.Dim(text)
}
