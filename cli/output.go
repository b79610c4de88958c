// Package cli implements the folio command-line tools.
package cli

import (
	"fmt"
	"io"
	"os"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
	dim    = "\033[2m"
)

// Printer writes colored status lines. Color is only used when the output
// is a terminal.
type Printer struct {
	out      io.Writer
	errOut   io.Writer
	useColor bool
}

// NewPrinter creates a printer for stdout and stderr.
func NewPrinter() *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr)
}

// NewPrinterTo creates a printer writing to out and errOut.
func NewPrinterTo(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut, useColor: isTerminal(out)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (p *Printer) colorize(color, text string) string {
	if !p.useColor {
		return text
	}
	return color + text + reset
}

// Success prints a green success message with checkmark
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.colorize(green, "✓"), fmt.Sprintf(format, args...))
}

// Error prints a red error message to the error output.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintf(p.errOut, "%s %s\n", p.colorize(red, "✗"), fmt.Sprintf(format, args...))
}

// Warning prints a yellow warning message
func (p *Printer) Warning(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.colorize(yellow, "!"), fmt.Sprintf(format, args...))
}

// Info prints a blue info message
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", p.colorize(blue, "→"), fmt.Sprintf(format, args...))
}

// Title prints a bold title
func (p *Printer) Title(format string, args ...any) {
	fmt.Fprintf(p.out, "\n%s\n\n", p.colorize(bold, fmt.Sprintf(format, args...)))
}

// Plain prints an uncolored line.
func (p *Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Bold returns bold text
func (p *Printer) Bold(text string) string {
	return p.colorize(bold, text)
}

// Cyan returns cyan text
func (p *Printer) Cyan(text string) string {
	return p.colorize(cyan, text)
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	return p.colorize(dim, text)
}

// Banner prints the folio banner.
func (p *Printer) Banner(version string) {
	banner := `
    ____      ___
   / __/___  / (_)___
  / /_/ __ \/ / / __ \
 / __/ /_/ / / / /_/ /
/_/  \____/_/_/\____/
`
	fmt.Fprintln(p.out, p.colorize(cyan, banner))
	fmt.Fprintf(p.out, "%s %s\n\n", p.Dim("Interactive portfolio pages, served from Go"), p.Dim("v"+version))
}
