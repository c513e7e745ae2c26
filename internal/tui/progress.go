package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/dustin/go-humanize"
	"github.com/handiism/grabr/internal/download"
)

// clearLine returns the cursor to column 0 and erases the line.
const clearLine = "\r\x1b[K"

// ProgressView draws a single-line progress bar for the file being written.
//
// The bar is redrawn in place and erased when the file is complete. Call
// Clear before printing anything else to the same writer.
//
// Example usage:
//
//	view := NewProgressView(os.Stdout)
//	manager.SetTransferCallback(view.Update)
type ProgressView struct {
	out io.Writer
	bar progress.Model

	name    string
	percent int
	active  bool
}

// NewProgressView creates a ProgressView writing to out.
func NewProgressView(out io.Writer) *ProgressView {
	return &ProgressView{
		out:     out,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		percent: -1,
	}
}

// Update redraws the bar for e. Redraws are limited to whole-percent steps
// when the total size is known.
func (v *ProgressView) Update(e download.TransferEvent) {
	if e.Name != v.name {
		v.name = e.Name
		v.percent = -1
	}

	var line string
	if e.Total > 0 {
		ratio := min(float64(e.Written)/float64(e.Total), 1)
		percent := int(ratio * 100)
		if percent == v.percent {
			return
		}
		v.percent = percent

		line = fmt.Sprintf("%s %s %s",
			nameStyle.Render(e.Name),
			v.bar.ViewAs(ratio),
			dimStyle.Render(humanize.Bytes(uint64(e.Written))+" / "+humanize.Bytes(uint64(e.Total))),
		)
	} else {
		line = fmt.Sprintf("%s %s", nameStyle.Render(e.Name), dimStyle.Render(humanize.Bytes(uint64(e.Written))))
	}

	fmt.Fprint(v.out, clearLine+line)
	v.active = true

	if e.Total > 0 && e.Written >= e.Total {
		v.Clear()
	}
}

// Clear erases the bar if one is drawn.
func (v *ProgressView) Clear() {
	if v.active {
		fmt.Fprint(v.out, clearLine)
		v.active = false
	}
}
