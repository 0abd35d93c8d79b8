// Package output provides formatters for CLI output.
package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todocli/internal/task"
)

const (
	// DoneGlyph marks a complete task.
	DoneGlyph = "✔"

	// OpenGlyph marks an incomplete task.
	OpenGlyph = "✘"

	// TimeLayout renders creation times as hour:minute, day.month.year.
	TimeLayout = "15:04, 02.01.2006"
)

// Printer writes task lines to w. Glyphs are coloured only when w is a
// terminal that supports it.
type Printer struct {
	w    io.Writer
	loc  *time.Location
	done lipgloss.Style
	open lipgloss.Style
}

// NewPrinter creates a Printer rendering times in loc (local time if nil).
// Colour support is detected from w.
func NewPrinter(w io.Writer, loc *time.Location) *Printer {
	return NewStyledPrinter(w, loc, lipgloss.NewRenderer(w))
}

// NewStyledPrinter is like NewPrinter but styles glyphs with r, for when w
// is a buffer standing in for the terminal r was created for.
func NewStyledPrinter(w io.Writer, loc *time.Location, r *lipgloss.Renderer) *Printer {
	if loc == nil {
		loc = time.Local
	}
	return &Printer{
		w:    w,
		loc:  loc,
		done: r.NewStyle().Foreground(lipgloss.Color("2")),
		open: r.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Task prints one task line.
// Format: "{INDEX}. [{GLYPH}] {TITLE} - {HH:MM, DD.MM.YYYY}\n"
func (p *Printer) Task(t task.Task) {
	glyph := p.open.Render(OpenGlyph)
	if t.Complete {
		glyph = p.done.Render(DoneGlyph)
	}
	fmt.Fprintf(p.w, "%d. [%s] %s - %s\n", t.Index, glyph, normalizeTitle(t.Title), FormatTime(t.CreatedAt, p.loc))
}

// FormatTime renders ts in loc using TimeLayout.
func FormatTime(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(TimeLayout)
}

// normalizeTitle replaces newlines with spaces so each task stays on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r\n", " ")
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}

type rendererKey struct{}

// WithRenderer returns a copy of ctx carrying r.
func WithRenderer(ctx context.Context, r *lipgloss.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// RendererFrom returns the renderer stored in ctx, or a renderer for w.
func RendererFrom(ctx context.Context, w io.Writer) *lipgloss.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*lipgloss.Renderer); ok && r != nil {
		return r
	}
	return lipgloss.NewRenderer(w)
}
