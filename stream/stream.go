// Package stream provides a random-access binary reader with a switchable
// byte order, as needed by container-format metadata parsers.
package stream

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Reader reads unsigned integers and byte runs from a seekable source while
// tracking the absolute offset. Multi-byte reads honor the current byte-order
// flag, which callers may toggle mid-stream.
type Reader struct {
	src    io.ReadSeeker
	offset int64
	length int64
	little bool
	buf    [4]byte
}

// New creates a Reader over a seekable source. The total length is measured
// once at construction; the cursor starts at offset 0.
func New(src io.ReadSeeker) (*Reader, error) {
	length, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("measuring stream length: %w", err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding stream: %w", err)
	}
	return &Reader{src: src, length: length}, nil
}

// NewBytes creates a Reader over an in-memory byte slice.
func NewBytes(data []byte) *Reader {
	return &Reader{src: bytes.NewReader(data), length: int64(len(data))}
}

// Offset returns the current absolute read position.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Length returns the total length of the underlying source.
func (r *Reader) Length() int64 {
	return r.length
}

// LittleEndian reports whether multi-byte reads currently use little-endian
// byte order.
func (r *Reader) LittleEndian() bool {
	return r.little
}

// SetLittleEndian sets the byte order used by subsequent multi-byte reads.
func (r *Reader) SetLittleEndian(little bool) {
	r.little = little
}

func (r *Reader) order() binary.ByteOrder {
	if r.little {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// Seek moves the cursor to the given absolute offset.
func (r *Reader) Seek(offset int64) error {
	if offset < 0 {
		return fmt.Errorf("seek to negative offset %d", offset)
	}
	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", offset, err)
	}
	r.offset = offset
	return nil
}

// Skip advances the cursor by n bytes without reading them.
func (r *Reader) Skip(n int64) error {
	return r.Seek(r.offset + n)
}

func (r *Reader) readFull(p []byte) error {
	n, err := io.ReadFull(r.src, p)
	r.offset += int64(n)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return fmt.Errorf("truncated read of %d bytes at offset %d: %w",
				len(p), r.offset, io.ErrUnexpectedEOF)
		}
		return fmt.Errorf("reading %d bytes at offset %d: %w", len(p), r.offset, err)
	}
	return nil
}

// ReadUint8 reads a single unsigned byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.readFull(r.buf[:1]); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer in the current byte order.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.readFull(r.buf[:2]); err != nil {
		return 0, err
	}
	return r.order().Uint16(r.buf[:2]), nil
}

// ReadUint32 reads an unsigned 32-bit integer in the current byte order.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.readFull(r.buf[:4]); err != nil {
		return 0, err
	}
	return r.order().Uint32(r.buf[:4]), nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	p := make([]byte, n)
	if err := r.readFull(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadString reads exactly n bytes and returns them as a string.
func (r *Reader) ReadString(n int) (string, error) {
	p, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}
