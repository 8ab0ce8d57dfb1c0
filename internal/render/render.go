// Package render draws a session frame to a terminal or a pipe.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mesh-intelligence/tabview/internal/session"
)

// SelectedMarker flags a selected row in the marker column.
const SelectedMarker = "*"

// Options controls how a frame is drawn.
type Options struct {
	// Plain writes tab-separated lines instead of a bordered grid.
	Plain bool
	// SelectedOnly draws only the selected rows.
	SelectedOnly bool
}

// Render writes f to w. Rows appear in display order; the first column is
// the physical row index and the second marks selected rows. Short rows are
// padded with blanks up to the widest row.
func Render(w io.Writer, f session.Frame, opts Options) error {
	rows := f.Rows
	if opts.SelectedOnly {
		rows = f.SelectedRows()
	}
	width := f.Shape.MaxColumns

	if opts.Plain {
		return renderPlain(w, rows)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetHeader(header(width, f.Reversed))
	for _, r := range rows {
		tw.Append(line(r, width))
	}
	tw.Render()

	_, err := fmt.Fprintln(w, Status(f))
	return err
}

// Status summarizes a frame in one line, prefixed by its source once a
// table is loaded.
func Status(f session.Frame) string {
	order := "ascending"
	if f.Reversed {
		order = "descending"
	}
	s := fmt.Sprintf("%d rows, %d selected, %s", f.Shape.Rows, f.Selected, order)
	if f.Source != "" {
		s = f.Source + ": " + s
	}
	if f.Shape.Ragged {
		s += fmt.Sprintf(", ragged %d-%d columns", f.Shape.MinColumns, f.Shape.MaxColumns)
	}
	return s
}

func header(width int, reversed bool) []string {
	idx := "# ^"
	if reversed {
		idx = "# v"
	}
	h := make([]string, 0, width+2)
	h = append(h, idx, "")
	for i := 1; i <= width; i++ {
		h = append(h, "c"+strconv.Itoa(i))
	}
	return h
}

func line(r session.FrameRow, width int) []string {
	marker := ""
	if r.Selected {
		marker = SelectedMarker
	}
	out := make([]string, 0, width+2)
	out = append(out, strconv.Itoa(r.Physical), marker)
	out = append(out, r.Cells...)
	for len(out) < width+2 {
		out = append(out, "")
	}
	return out
}

// renderPlain writes each row's cells joined by tabs, so the output can be
// fed back in as a dropped file.
func renderPlain(w io.Writer, rows []session.FrameRow) error {
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, strings.Join(r.Cells, "\t")); err != nil {
			return err
		}
	}
	return nil
}
