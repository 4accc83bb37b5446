// Package render provides output formatting for CLI commands.
// Separates presentation from validation logic.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer wraps an io.Writer with formatting utilities.
type Writer struct {
	out io.Writer
}

// NewWriter creates a Writer that writes to the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// Stdout returns a Writer that writes to os.Stdout.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Stderr returns a Writer that writes to os.Stderr.
func Stderr() *Writer {
	return NewWriter(os.Stderr)
}

// Print writes formatted text.
func (w *Writer) Print(format string, args ...any) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Line writes a blank line.
func (w *Writer) Line() {
	fmt.Fprintln(w.out)
}

// Header writes a header line.
func (w *Writer) Header(title string) {
	fmt.Fprintln(w.out, strings.ToUpper(title))
	fmt.Fprintln(w.out, strings.Repeat("─", 60))
}

// Section writes a section header.
func (w *Writer) Section(title string) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, strings.ToUpper(title)+":")
}

// Item writes an indented item line.
func (w *Writer) Item(format string, args ...any) {
	fmt.Fprintf(w.out, "  "+format+"\n", args...)
}

// SubItem writes a double-indented sub-item.
func (w *Writer) SubItem(format string, args ...any) {
	fmt.Fprintf(w.out, "    "+format+"\n", args...)
}

// BoolIcon returns icon for boolean.
func BoolIcon(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

// KindIcon returns an icon for a finding kind.
func KindIcon(kind string) string {
	switch kind {
	case "parse":
		return "⊘"
	case "schema":
		return "□"
	case "reference":
		return "↛"
	default:
		return "•"
	}
}
