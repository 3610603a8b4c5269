package editor

// Drag tracks a drag-to-reorder gesture. The zero value is idle.
type Drag struct {
	active bool
	source int
	hover  int
}

// Start records the position the gesture began on.
func (d *Drag) Start(index int) {
	d.active = true
	d.source = index
	d.hover = index
}

// Motion records the position under the pointer and returns the position a view
// should highlight. Positions past the end of the list keep the last valid hover.
func (d *Drag) Motion(index, length int) int {
	if d.active && index >= 0 && index < length {
		d.hover = index
	}
	return d.hover
}

// Active reports whether a gesture is in progress.
func (d *Drag) Active() bool { return d.active }

// Source returns the position the gesture started on.
func (d *Drag) Source() int { return d.source }

// Hover returns the last highlighted position.
func (d *Drag) Hover() int { return d.hover }

// Cancel abandons the gesture without producing a command.
func (d *Drag) Cancel() { *d = Drag{} }

// Drop ends the gesture at index and returns the MoveTo command it produces.
//
// No command is produced when no gesture is active or the entry is dropped
// where it started.
func (d *Drag) Drop(index int) (Command, bool) {
	if !d.active {
		return Command{}, false
	}
	source := d.source
	d.Cancel()

	if index == source {
		return Command{}, false
	}
	return Move(source, index), true
}
