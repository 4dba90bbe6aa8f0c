// Package pngtransport embeds and extracts compressed payloads in a
// PNG's tEXt chunks, used to carry a workflow document
// alongside its rendered preview image. CRC32 and deflate both come
// from the standard library.
package pngtransport

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// DefaultKeyword is the tEXt keyword this package writes and looks for
// absent an explicit keyword argument.
const DefaultKeyword = "tStorie-workflow"

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Sentinel errors for the transport failure modes.
var (
	ErrSignature     = errors.New("pngtransport: not a PNG (bad signature)")
	ErrCorruptChunk  = errors.New("pngtransport: chunk failed CRC32 validation")
	ErrMissingKeyword = errors.New("pngtransport: no tEXt chunk with the given keyword")
	ErrInflate       = errors.New("pngtransport: payload did not inflate")
)

// chunk is one PNG chunk.
type chunk struct {
	typ  [4]byte
	data []byte
}

// Embed inserts a tEXt chunk carrying payload, deflate-compressed,
// under keyword, immediately before IEND. The payload is stored as raw
// deflate bytes, not base64url-encoded.
func Embed(pngBytes []byte, keyword string, payload []byte) ([]byte, error) {
	chunks, err := parseChunks(pngBytes)
	if err != nil {
		return nil, err
	}

	deflated, err := deflateBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("pngtransport: deflate payload: %w", err)
	}

	text := make([]byte, 0, len(keyword)+1+len(deflated))
	text = append(text, keyword...)
	text = append(text, 0x00)
	text = append(text, deflated...)

	newChunk := chunk{typ: [4]byte{'t', 'E', 'X', 't'}, data: text}

	out := make([]chunk, 0, len(chunks)+1)
	inserted := false
	for _, c := range chunks {
		if !inserted && string(c.typ[:]) == "IEND" {
			out = append(out, newChunk)
			inserted = true
		}
		out = append(out, c)
	}
	if !inserted {
		out = append(out, newChunk)
	}

	return assemble(out), nil
}

// Extract returns the first tEXt chunk's payload matching keyword,
// inflating it back to the original bytes.
func Extract(pngBytes []byte, keyword string) ([]byte, error) {
	chunks, err := parseChunks(pngBytes)
	if err != nil {
		return nil, err
	}

	for _, c := range chunks {
		if string(c.typ[:]) != "tEXt" {
			continue
		}
		sep := bytes.IndexByte(c.data, 0x00)
		if sep < 0 {
			continue
		}
		if string(c.data[:sep]) != keyword {
			continue
		}
		payload, err := inflateBytes(c.data[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		return payload, nil
	}
	return nil, ErrMissingKeyword
}

// parseChunks verifies the PNG signature and walks chunks through
// IEND, validating every chunk's CRC32 along the way.
func parseChunks(pngBytes []byte) ([]chunk, error) {
	if len(pngBytes) < len(pngSignature) || !bytes.Equal(pngBytes[:len(pngSignature)], pngSignature) {
		return nil, ErrSignature
	}

	var chunks []chunk
	pos := len(pngSignature)
	for pos < len(pngBytes) {
		if pos+8 > len(pngBytes) {
			return nil, fmt.Errorf("%w: truncated chunk header", ErrCorruptChunk)
		}
		length := binary.BigEndian.Uint32(pngBytes[pos : pos+4])
		var typ [4]byte
		copy(typ[:], pngBytes[pos+4:pos+8])
		dataStart := pos + 8
		dataEnd := dataStart + int(length)
		if dataEnd+4 > len(pngBytes) {
			return nil, fmt.Errorf("%w: truncated chunk data", ErrCorruptChunk)
		}
		data := pngBytes[dataStart:dataEnd]
		wantCRC := binary.BigEndian.Uint32(pngBytes[dataEnd : dataEnd+4])

		gotCRC := chunkCRC(typ, data)
		if gotCRC != wantCRC {
			return nil, fmt.Errorf("%w: type %s", ErrCorruptChunk, typ[:])
		}

		chunks = append(chunks, chunk{typ: typ, data: append([]byte(nil), data...)})
		pos = dataEnd + 4

		if string(typ[:]) == "IEND" {
			break
		}
	}
	return chunks, nil
}

// assemble reassembles chunks back into a complete PNG byte stream,
// recomputing each chunk's length and CRC32.
func assemble(chunks []chunk) []byte {
	var buf bytes.Buffer
	buf.Write(pngSignature)
	for _, c := range chunks {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(c.data)))
		buf.Write(lenBuf[:])
		buf.Write(c.typ[:])
		buf.Write(c.data)
		var crcBuf [4]byte
		binary.BigEndian.PutUint32(crcBuf[:], chunkCRC(c.typ, c.data))
		buf.Write(crcBuf[:])
	}
	return buf.Bytes()
}

// chunkCRC computes the PNG-variant CRC32 (polynomial 0xEDB88320, i.e.
// the IEEE table Go's hash/crc32 already uses) over type||data.
func chunkCRC(typ [4]byte, data []byte) uint32 {
	h := crc32.NewIEEE()
	h.Write(typ[:])
	h.Write(data)
	return h.Sum32()
}

func deflateBytes(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(payload); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflateBytes(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
