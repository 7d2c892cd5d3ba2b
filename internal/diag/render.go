package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sling/internal/source"
)

// RenderOptions controls human-readable diagnostic output.
type RenderOptions struct {
	// Color enables ANSI colors. The caller decides (flag + terminal check).
	Color bool
	// ShowSource enables the source line with a caret underline.
	ShowSource bool
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan, color.Bold)
	caretStyle   = color.New(color.FgRed)
	noteStyle    = color.New(color.FgHiBlack)
)

func severityLabel(sev Severity) *color.Color {
	switch sev {
	case SevWarning:
		return warningLabel
	case SevInfo:
		return infoLabel
	default:
		return errorLabel
	}
}

// Render writes every diagnostic in the bag in a stable order:
//
//	path:line:col: ERROR [GEN5001] message
//	    var x = y;
//	            ^
func Render(w io.Writer, bag *Bag, fs *source.FileSet, opts RenderOptions) error {
	if bag == nil {
		return nil
	}
	bag.Sort()
	for _, d := range bag.Items() {
		if err := renderOne(w, d, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

func renderOne(w io.Writer, d Diagnostic, fs *source.FileSet, opts RenderOptions) error {
	label := d.Severity.String()
	if opts.Color {
		label = severityLabel(d.Severity).Sprint(label)
	}

	path := "<unknown>"
	line, col := uint32(0), uint32(0)
	var file *source.File
	if fs != nil && int(d.Primary.File) < fs.Len() {
		file = fs.Get(d.Primary.File)
		path = file.Path
		start, _ := fs.Resolve(d.Primary)
		line, col = start.Line, start.Col
	}

	if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s] %s\n", path, line, col, label, d.Code.ID(), d.Message); err != nil {
		return err
	}

	if opts.ShowSource && file != nil && line > 0 {
		if err := renderSourceLine(w, file, d.Primary, line, col, opts); err != nil {
			return err
		}
	}

	for _, n := range d.Notes {
		noteMsg := "note: " + n.Msg
		if opts.Color {
			noteMsg = noteStyle.Sprint(noteMsg)
		}
		if _, err := fmt.Fprintf(w, "    %s\n", noteMsg); err != nil {
			return err
		}
	}
	return nil
}

func renderSourceLine(w io.Writer, file *source.File, span source.Span, line, col uint32, opts RenderOptions) error {
	text := file.GetLine(line)
	if text == "" {
		return nil
	}
	if _, err := fmt.Fprintf(w, "    %s\n", text); err != nil {
		return err
	}

	// Каретка выравнивается по экранной ширине префикса, а не по байтам.
	prefix := text
	if int(col-1) <= len(text) {
		prefix = text[:col-1]
	}
	pad := runewidth.StringWidth(prefix)

	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	if int(col-1)+width > len(text) {
		width = len(text) - int(col-1)
		if width < 1 {
			width = 1
		}
	}

	caret := strings.Repeat("^", width)
	if opts.Color {
		caret = caretStyle.Sprint(caret)
	}
	_, err := fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), caret)
	return err
}
