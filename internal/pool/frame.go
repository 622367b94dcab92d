// Package pool recycles the scratch buffers used to assemble snapshot envelopes.
package pool

import "sync"

const (
	// FrameDefaultSize fits a sealed history of a few hundred entries.
	FrameDefaultSize = 8 * 1024
	// FrameMaxRetained is the largest capacity returned to the pool.
	FrameMaxRetained = 256 * 1024
)

// Frame is a reusable buffer holding one envelope while it is assembled.
type Frame struct {
	buf []byte
}

// NewFrame returns an empty Frame with the given capacity.
func NewFrame(capacity int) *Frame {
	return &Frame{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes written so far.
func (f *Frame) Len() int { return len(f.buf) }

// Cap returns the capacity of the underlying storage.
func (f *Frame) Cap() int { return cap(f.buf) }

// Bytes returns the assembled bytes. The slice aliases the frame.
func (f *Frame) Bytes() []byte { return f.buf }

// Reset empties the frame and keeps its storage.
func (f *Frame) Reset() { f.buf = f.buf[:0] }

// Reserve extends the frame by n zeroed bytes and returns their offset.
// Use At to write them; later appends may move the storage.
func (f *Frame) Reserve(n int) int {
	start := len(f.buf)
	f.ensure(n)
	f.buf = f.buf[:start+n]
	clear(f.buf[start:])

	return start
}

// At returns the n bytes starting at off in the current storage.
// The slice is valid until the next Reserve or Append.
func (f *Frame) At(off, n int) []byte {
	return f.buf[off : off+n : off+n]
}

// Append copies p to the end of the frame.
func (f *Frame) Append(p []byte) {
	f.ensure(len(p))
	f.buf = append(f.buf, p...)
}

// Detach returns a copy of the frame contents that outlives the frame.
func (f *Frame) Detach() []byte {
	out := make([]byte, len(f.buf))
	copy(out, f.buf)

	return out
}

func (f *Frame) ensure(n int) {
	if cap(f.buf)-len(f.buf) >= n {
		return
	}
	grown := make([]byte, len(f.buf), 2*cap(f.buf)+n)
	copy(grown, f.buf)
	f.buf = grown
}

// FramePool hands out Frames and drops those that grew past a limit.
type FramePool struct {
	frames      sync.Pool
	maxRetained int
}

// NewFramePool creates a pool of frames with initial capacity size.
// Frames whose capacity exceeds maxRetained are discarded on Put.
func NewFramePool(size, maxRetained int) *FramePool {
	p := &FramePool{maxRetained: maxRetained}
	p.frames.New = func() any { return NewFrame(size) }

	return p
}

// Get returns an empty frame.
func (p *FramePool) Get() *Frame {
	f, _ := p.frames.Get().(*Frame)
	return f
}

// Put resets f and returns it to the pool. Nil frames are ignored.
func (p *FramePool) Put(f *Frame) {
	if f == nil || f.Cap() > p.maxRetained {
		return
	}
	f.Reset()
	p.frames.Put(f)
}

var snapshotFrames = NewFramePool(FrameDefaultSize, FrameMaxRetained)

// GetSnapshotFrame returns a frame from the shared snapshot pool.
func GetSnapshotFrame() *Frame { return snapshotFrames.Get() }

// PutSnapshotFrame returns f to the shared snapshot pool.
func PutSnapshotFrame(f *Frame) { snapshotFrames.Put(f) }
