package base

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// frameHeaderSize is 8 bytes requestID + 4 bytes payload length
	frameHeaderSize = 12

	// maxFrameSize bounds a single payload; anything larger indicates a
	// desynchronized or hostile stream
	maxFrameSize = 16 * 1024 * 1024
)

// writeFrame writes a frame to the connection with the format:
// - 8 bytes: requestID (uint64, big endian)
// - 4 bytes: data length (uint32, big endian)
// - N bytes: data payload
//
// The explicit length prefix is what makes the stream safe against messages
// spanning multiple reads or several messages arriving in one read.
func writeFrame(conn net.Conn, requestID uint64, data []byte) error {
	if len(data) > maxFrameSize {
		return fmt.Errorf("frame of %d bytes exceeds limit of %d", len(data), maxFrameSize)
	}

	header := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint64(header[:8], requestID)
	binary.BigEndian.PutUint32(header[8:12], uint32(len(data)))

	b := net.Buffers{header, data}
	if _, err := b.WriteTo(conn); err != nil {
		return err
	}
	return nil
}

// readFrame reads a frame from the connection using the provided buffer.
// If the buffer is too small, it will allocate a new temporary buffer for
// the data. The returned headerRead count lets callers distinguish an idle
// timeout (nothing consumed, safe to retry) from a mid-frame failure.
//
// A non-zero bodyTimeout replaces the connection's read deadline once the
// header has arrived. Callers that poll with a short idle deadline need
// this so a large payload trailing its header is not cut off by the tick.
func readFrame(conn net.Conn, buf []byte, bodyTimeout time.Duration) (requestID uint64, data []byte, headerRead int, err error) {
	// Check if buffer is large enough for header
	if buf == nil || len(buf) < frameHeaderSize {
		buf = make([]byte, frameHeaderSize)
	}

	// Read header
	n, err := io.ReadFull(conn, buf[:frameHeaderSize])
	if err != nil {
		return 0, nil, n, err
	}

	// Parse header
	requestID = binary.BigEndian.Uint64(buf[:8])
	contentLength := binary.BigEndian.Uint32(buf[8:12])

	if contentLength > maxFrameSize {
		return requestID, nil, n, fmt.Errorf("frame of %d bytes exceeds limit of %d", contentLength, maxFrameSize)
	}

	// If no data, return empty slice
	if contentLength == 0 {
		return requestID, []byte{}, n, nil
	}

	// A frame is now committed on the wire; from here on a timeout is a
	// broken peer, not an idle connection, so the deadline becomes the
	// request timeout instead of the caller's poll tick
	if bodyTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(bodyTimeout))
	}

	// Check if buffer is large enough for data
	if len(buf) < int(contentLength) {
		buf = make([]byte, contentLength)
	}

	// Read data
	if _, err := io.ReadFull(conn, buf[:contentLength]); err != nil {
		return requestID, nil, n, err
	}

	return requestID, buf[:contentLength], n, nil
}
