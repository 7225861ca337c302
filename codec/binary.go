package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// Raw slice IO. Arrays are written as a 64-bit element count followed
// by the elements' bytes; all element types used here are fixed-size,
// padding-free structs of 32/64-bit fields, so their in-memory layout
// is the wire layout on little-endian hosts.

var byteOrder = binary.LittleEndian

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	byteOrder.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			err = ErrTruncated
		}
		return 0, err
	}
	return byteOrder.Uint64(buf[:]), nil
}

// writeSlice writes the element count and the slice's raw bytes.
func writeSlice[T any](w io.Writer, s []T) error {
	if err := writeUint64(w, uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(s[0]))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*size)
	_, err := w.Write(raw)
	return err
}

// readSlice reads a length-prefixed raw array.
func readSlice[T any](r io.Reader) ([]T, error) {
	count, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	if count > maxArrayLen {
		return nil, fmt.Errorf("%w: %d elements", ErrBadLength, count)
	}
	if count == 0 {
		return nil, nil
	}
	s := make([]T, count)
	size := int(unsafe.Sizeof(s[0]))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), int(count)*size)
	if _, err := io.ReadFull(r, raw); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrTruncated
		}
		return nil, err
	}
	return s, nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUint64(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	b, err := readSlice[byte](r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
