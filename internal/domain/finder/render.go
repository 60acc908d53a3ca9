package finder

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ANSI sequences around the line:column prefix (blue, bold, underlined).
const (
	highlightStart = "\033[34;1;4m"
	highlightReset = "\033[0m"
)

var (
	ErrLineOutOfRange   = errors.New("line out of range")
	ErrColumnOutOfRange = errors.New("column out of range")
)

// Renderer writes matches as "line:column:\t<source line>".
type Renderer struct {
	w     io.Writer
	lines []string
	color bool
}

// NewRenderer returns a renderer over lines. With color set the line:column
// prefix is highlighted.
func NewRenderer(w io.Writer, lines []string, color bool) *Renderer {
	return &Renderer{w: w, lines: lines, color: color}
}

// Render writes one match. Out-of-range positions return ErrLineOutOfRange
// or ErrColumnOutOfRange and write nothing.
func (r *Renderer) Render(m Match) error {
	if m.Line < 1 || m.Line > len(r.lines) {
		return fmt.Errorf("%d:%d: %w (file has %d lines)", m.Line, m.Column, ErrLineOutOfRange, len(r.lines))
	}
	body, err := RenderLine(r.lines[m.Line-1], m.Column, m.Spelling)
	if err != nil {
		return fmt.Errorf("%d:%d: %w", m.Line, m.Column, err)
	}

	var sb strings.Builder
	if r.color {
		sb.WriteString(highlightStart)
	}
	fmt.Fprintf(&sb, "%d:%d", m.Line, m.Column)
	if r.color {
		sb.WriteString(highlightReset)
	}
	sb.WriteString(":\t")
	sb.WriteString(body)
	sb.WriteByte('\n')

	_, err = io.WriteString(r.w, sb.String())
	return err
}

// RenderLine rebuilds line with spelling written at the 1-based byte column
// and the original bytes it covers skipped. The replaced span is assumed to
// be exactly len(spelling) bytes, which holds for identifiers but not for
// spellings the parser normalizes (e.g. "operator ==").
func RenderLine(line string, column int, spelling string) (string, error) {
	if column < 1 || column > len(line) || column-1+len(spelling) > len(line) {
		return "", fmt.Errorf("%w: column %d, spelling %q, line length %d", ErrColumnOutOfRange, column, spelling, len(line))
	}

	var sb strings.Builder
	sb.Grow(len(line))
	for col := 1; col <= len(line); col++ {
		if col == column {
			sb.WriteString(spelling)
			if len(spelling) > 0 {
				col += len(spelling) - 1
			} else {
				sb.WriteByte(line[col-1])
			}
			continue
		}
		sb.WriteByte(line[col-1])
	}
	return sb.String(), nil
}
