package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"contractgen/internal/diag"
	"contractgen/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans, in bag order (call bag.Sort first):
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   12 | func Add(x uint32) uint32 {
//	      |          ^~~~~~~~
//
// followed by notes when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			f.FormatPath(opts.PathMode.mode(), fs.BaseDir()), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, p, tab)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				p.note.Sprint("note:"),
				nf.FormatPath(opts.PathMode.mode(), fs.BaseDir()), ns.Line, ns.Col,
				note.Msg,
			)
			writeSnippet(w, fs, note.Span, p, tab)
		}
	}
}

func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, p palette, tab int) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}

	colStart := int(start.Col) - 1
	colEnd := len(line)
	if end.Line == start.Line {
		colEnd = int(end.Col) - 1
	}
	colStart = min(max(colStart, 0), len(line))
	colEnd = min(max(colEnd, colStart), len(line))

	prefix := expandTabs(line[:colStart], tab)
	marked := expandTabs(line[colStart:colEnd], tab)
	pad := runewidth.StringWidth(prefix)
	width := max(runewidth.StringWidth(marked), 1)

	lineNo := fmt.Sprintf("%d", start.Line)
	gutter := strings.Repeat(" ", len(lineNo))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(lineNo), p.gutter.Sprint("|"), expandTabs(line, tab))
	fmt.Fprintf(w, " %s %s %s%s\n", gutter, p.gutter.Sprint("|"),
		strings.Repeat(" ", pad),
		p.caret.Sprint("^"+strings.Repeat("~", width-1)),
	)
}

func expandTabs(s string, width int) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}
