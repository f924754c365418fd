// Package membuf implements the fixed-size buffer fill used to generate raw
// memory write traffic.
package membuf

import "fmt"

// BufferSize is the size of the fill buffer: exactly 1 MiB.
const BufferSize = 1024 * 1024

// sink holds the last filled buffer so the stores in Fill stay observable and
// cannot be treated as dead by the compiler.
var sink []byte

// Alloc requests a buffer of the given size from the heap. A non-positive
// size is an error. If the runtime cannot satisfy the allocation it aborts
// the process with a non-zero status, so callers never see a partial buffer.
func Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("membuf: invalid buffer size %d", size)
	}
	return make([]byte, size), nil
}

// Fill writes the low byte of each index into the buffer in increasing order,
// then publishes the buffer to the package sink.
func Fill(buf []byte) {
	for i := range buf {
		buf[i] = byte(i)
	}
	sink = buf
}

// Verify reports the first offset whose value does not match the fill
// pattern, or nil if the whole buffer matches.
func Verify(buf []byte) error {
	for i := range buf {
		if buf[i] != byte(i) {
			return fmt.Errorf("membuf: offset %d holds %#x, want %#x", i, buf[i], byte(i))
		}
	}
	return nil
}
