package screen

// Device is the write side of a monitor. Implementations are expected to be
// cheap for unchanged rows; Frame only blits rows that differ from the last
// flushed frame.
type Device interface {
	// Size returns the device dimensions in cells.
	Size() (w, h int)
	// BlitRow replaces an entire device row. len(cells) equals the device
	// width.
	BlitRow(y int, cells []Cell) error
}

// Frame is a double-buffered render target for one device. Views draw into
// the back buffer; Flush diffs it against the front buffer and writes only
// rows that changed, then swaps. The device never sees a partial frame.
type Frame struct {
	dev   Device
	back  *Buffer
	front *Buffer
	// forceNext flushes every row on the next Flush, used after the device
	// (re)attaches or resizes.
	forceNext bool
}

// NewFrame creates a frame sized to the device.
func NewFrame(dev Device) *Frame {
	w, h := dev.Size()
	return &Frame{
		dev:       dev,
		back:      NewBuffer(w, h),
		front:     NewBuffer(w, h),
		forceNext: true,
	}
}

// Back returns the back buffer for drawing.
func (f *Frame) Back() *Buffer { return f.back }

// Size returns the frame dimensions.
func (f *Frame) Size() (w, h int) { return f.back.Size() }

// Window returns a window over the back buffer.
func (f *Frame) Window(x, y, w, h int) *Window {
	return NewWindow(f.back, x, y, w, h)
}

// Invalidate forces a full repaint on the next Flush.
func (f *Frame) Invalidate() { f.forceNext = true }

// Flush writes changed rows to the device and promotes the back buffer to
// front. Returns the number of rows written.
func (f *Frame) Flush() (rows int, err error) {
	_, h := f.back.Size()
	for y := 0; y < h; y++ {
		if !f.forceNext && rowEqual(f.back, f.front, y) {
			continue
		}
		if err := f.dev.BlitRow(y, f.back.RowCells(y)); err != nil {
			return rows, err
		}
		rows++
	}
	f.front.CopyFrom(f.back)
	f.forceNext = false
	return rows, nil
}
