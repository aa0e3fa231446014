package wire

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"sync"
)

const lengthPrefixSize = 4

// streamWriter adds a 4-byte little-endian length prefix to each frame,
// mirroring backkem-matter/pkg/message.StreamWriter.
type streamWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newStreamWriter(w io.Writer) *streamWriter {
	return &streamWriter{w: w}
}

func (sw *streamWriter) write(frame []byte) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	var lenBuf [lengthPrefixSize]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(frame)))
	if _, err := sw.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := sw.w.Write(frame)
	return err
}

// streamReader reads 4-byte length-prefixed frames, mirroring
// backkem-matter/pkg/message.StreamReader.
type streamReader struct {
	r io.Reader
}

func newStreamReader(r io.Reader) *streamReader {
	return &streamReader{r: r}
}

func (sr *streamReader) read() ([]byte, error) {
	var lenBuf [lengthPrefixSize]byte
	if _, err := io.ReadFull(sr.r, lenBuf[:]); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, ErrMessageTooShort
	}

	frameLen := binary.LittleEndian.Uint32(lenBuf[:])
	if frameLen == 0 {
		return nil, ErrInvalidLengthPrefix
	}
	if frameLen > MaxMessageSize {
		return nil, ErrMessageTooLong
	}

	frame := make([]byte, frameLen)
	if _, err := io.ReadFull(sr.r, frame); err != nil {
		return nil, ErrMessageTooShort
	}
	return frame, nil
}

// encode gob-encodes v into a standalone frame. Each frame carries its own
// gob type stream rather than sharing an Encoder/Decoder pair across
// calls, since calls may interleave across goroutines on the server side.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(frame []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(frame)).Decode(v)
}
