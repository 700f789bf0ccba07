package phy

// Buffer stages one in-flight frame. Its backing array is allocated once by
// NewBuffer and never grows; the write cursor always stays strictly below
// the capacity, so the last byte of the backing array is never part of a
// frame.
//
// A Buffer is not safe for concurrent use and must be handed to one radio
// operation at a time.
type Buffer struct {
	packet []byte
	pos    int
}

// NewBuffer returns a zero-filled buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		panic("phy: buffer capacity must be positive")
	}
	return &Buffer{packet: make([]byte, capacity)}
}

// Clear rewinds the cursor. Bytes past the cursor are left untouched.
func (b *Buffer) Clear() { b.pos = 0 }

// Append copies p after the current frame contents. It fails with
// ErrBufferFull, writing nothing, when the result would reach the capacity.
func (b *Buffer) Append(p []byte) error {
	if b.pos+len(p) >= len(b.packet) {
		return ErrBufferFull
	}
	copy(b.packet[b.pos:], p)
	b.pos += len(p)
	return nil
}

// Write implements io.Writer on top of Append.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Raw exposes the whole backing array so a driver can fill it directly.
// Follow a raw fill with Advance.
func (b *Buffer) Raw() []byte { return b.packet }

// Advance moves the cursor forward by n after a raw fill. Advancing to or
// past the capacity is a programming error and panics.
func (b *Buffer) Advance(n int) {
	if n < 0 || b.pos+n >= len(b.packet) {
		panic("phy: radio buffer cursor advanced past capacity")
	}
	b.pos += n
}

// Bytes returns the staged frame, packet[0:cursor].
func (b *Buffer) Bytes() []byte { return b.packet[:b.pos:b.pos] }

// WriteView returns the staged frame for in-place modification.
func (b *Buffer) WriteView() []byte { return b.packet[:b.pos:b.pos] }

func (b *Buffer) Len() int { return b.pos }

func (b *Buffer) Cap() int { return len(b.packet) }
