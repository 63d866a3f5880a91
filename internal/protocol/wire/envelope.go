// Package wire implements a length-prefixed JSON envelope codec for
// transporting protocol messages over any io.Reader/io.Writer, reimplementing
// (not importing — nstehr-vimy/vimy-core is not an independently fetchable
// module outside its own repo) the envelope pattern from vimy-core/ipc's
// protocol.go: a fixed-width length prefix followed by a JSON payload,
// letting a reader know exactly how many bytes to consume next.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// maxEnvelopeBytes bounds a single message to guard against a corrupt or
// adversarial length prefix requesting an unbounded allocation.
const maxEnvelopeBytes = 16 << 20 // 16 MiB

// WriteEnvelope JSON-encodes v and writes it to w as a 4-byte big-endian
// length prefix followed by the payload.
func WriteEnvelope(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire: marshal envelope: %w", err)
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wire: write envelope header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("wire: write envelope payload: %w", err)
	}
	return nil
}

// ReadEnvelope reads one length-prefixed JSON payload from r and decodes
// it into v.
func ReadEnvelope(r io.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return fmt.Errorf("wire: read envelope header: %w", err)
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxEnvelopeBytes {
		return fmt.Errorf("wire: envelope of %d bytes exceeds %d byte limit", n, maxEnvelopeBytes)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("wire: read envelope payload: %w", err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("wire: unmarshal envelope: %w", err)
	}
	return nil
}
