package report

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
)

// snapshotMagic prefixes every snapshot
var snapshotMagic = [4]byte{'C', 'G', 'R', '1'}

// ErrCorruptSnapshot is returned when a snapshot fails its integrity checks
var ErrCorruptSnapshot = errors.New("corrupt report snapshot")

// MaxSnapshotSize bounds both the compressed and the decoded payload
const MaxSnapshotSize = 64 << 20

// WriteSnapshot writes v as snappy-compressed JSON.
// Format: [Magic:4][DataLen:4][Data:N][Checksum:4], checksum over the compressed data.
func WriteSnapshot(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if len(data) > MaxSnapshotSize {
		return fmt.Errorf("snapshot of %d bytes exceeds %d", len(data), MaxSnapshotSize)
	}
	compressed := snappy.Encode(nil, data)

	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(compressed))); err != nil {
		return err
	}
	if _, err := w.Write(compressed); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, crc32.ChecksumIEEE(compressed))
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot into v
func ReadSnapshot(r io.Reader, v any) error {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if magic != snapshotMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorruptSnapshot, magic[:])
	}

	var dataLen uint32
	if err := binary.Read(r, binary.BigEndian, &dataLen); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if dataLen > MaxSnapshotSize {
		return fmt.Errorf("%w: length %d exceeds %d", ErrCorruptSnapshot, dataLen, MaxSnapshotSize)
	}
	compressed := make([]byte, dataLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	var checksum uint32
	if err := binary.Read(r, binary.BigEndian, &checksum); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if crc32.ChecksumIEEE(compressed) != checksum {
		return fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}

	decodedLen, err := snappy.DecodedLen(compressed)
	if err != nil {
		return fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	if decodedLen > MaxSnapshotSize {
		return fmt.Errorf("%w: decoded length %d exceeds %d", ErrCorruptSnapshot, decodedLen, MaxSnapshotSize)
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	return json.Unmarshal(data, v)
}

// EncodeCompressed returns the snapshot bytes of a report
func EncodeCompressed(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSnapshot(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeCompressed parses snapshot bytes produced by EncodeCompressed
func DecodeCompressed(data []byte) (*Report, error) {
	var r Report
	if err := ReadSnapshot(bytes.NewReader(data), &r); err != nil {
		return nil, err
	}
	return &r, nil
}
