package net

import (
	"bufio"
	"errors"
	"io"

	"github.com/tsugo/server/internal/net/packet"
)

// maxFrameSize bounds a single inbound frame. Anything larger is a
// broken or hostile client.
const maxFrameSize = 16 * 1024

var errFrameTooLarge = errors.New("net: frame exceeds size limit")

// readFrame reads one '%'-terminated frame and decodes it.
func readFrame(r *bufio.Reader) (packet.Message, error) {
	raw := make([]byte, 0, 128)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return packet.Message{}, err
		}
		if b == '%' {
			break
		}
		// Stock clients pad with newlines between frames.
		if b == '\n' || b == '\r' {
			continue
		}
		raw = append(raw, b)
		if len(raw) > maxFrameSize {
			return packet.Message{}, errFrameTooLarge
		}
	}
	return packet.Parse(string(raw)), nil
}

// writeFrame writes one encoded frame.
func writeFrame(w io.Writer, frame []byte) error {
	_, err := w.Write(frame)
	return err
}
