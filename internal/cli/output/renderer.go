// Package output renders command results in one of several modes: styled
// text for terminals, markdown for pipes and scripts, or JSON for tools.
// Mode auto picks text on a terminal and markdown otherwise.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes command output in a resolved mode. Styling applies only
// in text mode on a capable terminal.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styled bool
}

// NewRenderer resolves mode against out and returns a renderer. An
// unrecognized mode falls back to auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeMarkdown, ModeJSON:
	default:
		mode = ModeAuto
	}
	if mode == ModeAuto {
		if isTerminal(out) {
			mode = ModeText
		} else {
			mode = ModeMarkdown
		}
	}
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		styled: mode == ModeText && styleCapable(out),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styleCapable reports whether w supports colored output.
func styleCapable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

// EffectiveMode returns the resolved mode (never auto).
func (r *Renderer) EffectiveMode() Mode { return r.mode }

// Writer returns the destination for primary output.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the destination for diagnostics.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// Println writes a line of primary output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Header writes a section heading: styled in text mode, a markdown
// heading otherwise.
func (r *Renderer) Header(level int, text string) {
	if r.mode == ModeText {
		if r.styled {
			r.Println(headerStyle.Render(text))
		} else {
			r.Println(text)
		}
		return
	}
	r.Println(FormatHeader(level, text))
}

// KeyValue writes one labeled value: aligned and styled in text mode, a
// markdown bullet otherwise.
func (r *Renderer) KeyValue(key string, value any) {
	if r.mode == ModeText {
		k := key + ":"
		if r.styled {
			k = keyStyle.Render(k)
		}
		r.Printf("%-14s %v\n", k, value)
		return
	}
	r.Println(FormatKeyValue(key, value))
}

// Table writes a table with the given header row. Text mode draws a light
// box style; markdown mode emits a pipe table.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	h := make(table.Row, len(header))
	for i, c := range header {
		h[i] = c
	}
	t.AppendHeader(h)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.mode == ModeText {
		t.SetStyle(table.StyleLight)
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// Error writes an error line to the diagnostics stream.
func (r *Renderer) Error(msg string) {
	if r.styled {
		msg = errorStyle.Render(msg)
	}
	_, _ = fmt.Fprintln(r.errOut, msg)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// FormatHeader renders a markdown heading of the given level.
func FormatHeader(level int, text string) string {
	prefix := ""
	for i := 0; i < level; i++ {
		prefix += "#"
	}
	return prefix + " " + text
}

// FormatKeyValue renders a markdown key-value bullet.
func FormatKeyValue(key string, value any) string {
	return fmt.Sprintf("- **%s:** %v", key, value)
}
