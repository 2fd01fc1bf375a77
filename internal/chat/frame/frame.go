// Package frame implements the chat wire format.
//
// Every message is a frame: a 4-byte signed length prefix in the native byte order
// of the host, followed by exactly that many payload bytes. There is no escaping,
// no terminator and no checksum.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// HeaderSize - size of the length prefix in bytes.
const HeaderSize = 4

// DefaultMaxSize - default upper bound of a payload accepted by Read.
const DefaultMaxSize = 64 << 10

var (
	// ErrTooLarge - returns when the declared payload length exceeds the allowed maximum.
	// Nothing is allocated for such frame, the stream must be dropped.
	ErrTooLarge = errors.New("frame: payload exceeds size limit")

	// ErrInvalidLength - returns when the length prefix is negative.
	ErrInvalidLength = errors.New("frame: invalid payload length")
)

// Write - writes payload as single frame with one call to w.Write.
func Write(w io.Writer, payload []byte) error {
	if len(payload) > int(^uint32(0)>>1) {
		return ErrTooLarge
	}
	buf := make([]byte, HeaderSize+len(payload))
	binary.NativeEndian.PutUint32(buf, uint32(int32(len(payload))))
	copy(buf[HeaderSize:], payload)
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// Read - reads next frame from r and returns its payload.
// Returns io.EOF if r is exhausted before the first header byte
// and io.ErrUnexpectedEOF if the frame is truncated.
// Zero-length frame results to empty non-nil payload and nil error.
func Read(r io.Reader, max int) ([]byte, error) {
	header := [HeaderSize]byte{}
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, err
	}
	size := int32(binary.NativeEndian.Uint32(header[:]))
	switch {
	case size < 0:
		return nil, fmt.Errorf("%w (%d)", ErrInvalidLength, size)
	case max > 0 && int(size) > max:
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, max)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return payload, nil
}

// IsClosed - reports whether err means that the peer is gone rather than something went wrong.
// Connection reset or abort by the peer is a disconnect too.
func IsClosed(err error) bool {
	return errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE)
}
