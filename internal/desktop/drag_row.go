package desktop

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var _ fyne.Draggable = (*dragRow)(nil)

// dragRow is a list row that reports vertical drags in whole rows.
type dragRow struct {
	widget.Label
	index  int
	dy     float32
	onDrag func(source, offset int)
	onDrop func()
}

func newDragRow(onDrag func(source, offset int), onDrop func()) *dragRow {
	row := &dragRow{onDrag: onDrag, onDrop: onDrop}
	row.ExtendBaseWidget(row)
	return row
}

func (r *dragRow) Dragged(ev *fyne.DragEvent) {
	r.dy += ev.Dragged.DY
	if r.onDrag != nil {
		r.onDrag(r.index, rowOffset(r.dy, r.Size().Height+theme.Padding()))
	}
}

func (r *dragRow) DragEnd() {
	r.dy = 0
	if r.onDrop != nil {
		r.onDrop()
	}
}

// rowOffset converts a pixel distance into a whole number of rows.
func rowOffset(dy, rowHeight float32) int {
	if rowHeight <= 0 {
		return 0
	}
	return int(math.Round(float64(dy / rowHeight)))
}
