package bitvector

import (
	"encoding/binary"
	"io"
)

// writeUint64Slice writes a length-prefixed sequence of 8-byte
// little-endian unsigned integers, the archive format used for l1 and
// for the flat block word buffer.
func writeUint64Slice(w io.Writer, vals []uint64) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(vals))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, vals)
}

func readUint64Slice(r io.Reader) ([]uint64, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	vals := make([]uint64, n)
	if n == 0 {
		return vals, nil
	}
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// writeUint16Slice writes a length-prefixed sequence of 2-byte
// little-endian unsigned integers, the archive format used for l0 in a
// two-level structure (superblock width fits in 16 bits).
func writeUint16Slice(w io.Writer, vals []uint16) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(vals))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, vals)
}

func readUint16Slice(r io.Reader) ([]uint16, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	vals := make([]uint16, n)
	if n == 0 {
		return vals, nil
	}
	if err := binary.Read(r, binary.LittleEndian, vals); err != nil {
		return nil, err
	}
	return vals, nil
}
