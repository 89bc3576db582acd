// Copyright © 2025 The Ferrule authors

package diagnostic

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ferrulelang/ferrule/source"
)

// Renderer formats diagnostics as Rust-style annotated source snippets.
// Source text is read from the interned SourceMap, never from disk.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources resolves spans to file names and line text.
	Sources *source.SourceMap
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, fileFromWriter(w))
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	r.writeSpan(ew, d.Primary, "", d.Severity, p)
	for _, l := range d.Labels {
		r.writeSpan(ew, l.Span, l.Text, SeverityNote, p)
	}
	for _, h := range d.Helps {
		if !h.Span.IsDummy() {
			ew.printf("   %s=%s help: %s\n", p.boldCyan, p.reset, h.Text)
			r.writeSpan(ew, h.Span, "", SeverityNote, p)
			continue
		}
		ew.printf("   %s=%s help: %s\n", p.boldCyan, p.reset, h.Text)
	}
	for _, n := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, n.Text)
	}
	for _, s := range d.Suggestions {
		r.writeSuggestion(ew, s, p)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes. This avoids checking every fmt.Fprintf return value.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	var sevColor, sevText string
	switch d.Severity {
	case SeverityError:
		sevColor = p.boldRed
		sevText = "error"
	case SeverityWarning:
		sevColor = p.yellow
		sevText = "warning"
	case SeverityNote:
		sevColor = p.boldCyan
		sevText = "note"
	}
	lintTag := ""
	if d.Lint != "" {
		lintTag = fmt.Sprintf("[%s]", d.Lint)
	}
	ew.printf("%s%s%s%s%s:%s %s%s%s\n",
		sevColor, p.bold, sevText, lintTag, p.reset,
		p.reset,
		p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, s source.Span, label string, sev Severity, p palette) {
	if r.Sources == nil || s.IsDummy() {
		return
	}
	f := r.Sources.File(s.File)
	start, ok := r.Sources.LineCol(s.File, s.Start)
	if f == nil || !ok {
		return
	}
	ew.printf("  %s-->%s %s:%d:%d\n", p.boldBlue, p.reset, f.Name, start.Line, start.Col)

	line, ok := r.Sources.Line(s.File, start.Line)
	if !ok || line == "" {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(lineStr))
	displaySource := strings.ReplaceAll(line, "\t", "    ")

	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, displaySource)

	underLen := r.underlineLen(s, start)
	underPad := strings.Repeat(" ", displayWidth(linePrefix(line, int(start.Col))))
	markColor := p.boldRed
	mark := "^"
	if sev == SeverityNote {
		markColor = p.boldBlue
		mark = "-"
	}
	underline := strings.Repeat(mark, underLen)

	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, markColor, underline, p.reset)
	if label != "" {
		ew.printf(" %s%s%s", markColor, label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) writeSuggestion(ew *errWriter, s Suggestion, p palette) {
	ew.printf("   %s=%s help: %s", p.boldCyan, p.reset, s.Message)
	if len(s.Parts) == 1 {
		ew.printf(": %s`%s`%s", p.boldGreen, s.Parts[0].Replacement, p.reset)
	}
	ew.print("\n")
	if len(s.Parts) > 1 && r.Sources != nil {
		for _, part := range s.Parts {
			if lc, ok := r.Sources.LineCol(part.Span.File, part.Span.Start); ok {
				ew.printf("     %s->%s %s: %s`%s`%s\n", p.boldBlue, p.reset, lc, p.boldGreen, part.Replacement, p.reset)
			}
		}
	}
	if s.Applicability != MachineApplicable {
		ew.printf("   %s=%s note: suggestion is %s\n", p.boldCyan, p.reset, s.Applicability)
	}
}

// underlineLen computes how many display columns the span covers on its
// first line.
func (r *Renderer) underlineLen(s source.Span, start source.LineCol) int {
	end, ok := r.Sources.LineCol(s.File, s.End)
	if !ok || end.Line != start.Line || end.Col <= start.Col {
		return 1
	}
	return int(end.Col - start.Col)
}

// linePrefix returns the text preceding a 1-based rune column.
func linePrefix(line string, col int) string {
	if col <= 1 {
		return ""
	}
	runes := []rune(line)
	if col-1 > len(runes) {
		return line
	}
	return string(runes[:col-1])
}

// displayWidth returns the display width of a string, expanding tabs to 4
// spaces.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}

// fileFromWriter attempts to extract an *os.File from a writer for terminal
// detection. Returns nil if the writer is not backed by a file.
func fileFromWriter(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
