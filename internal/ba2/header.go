// Package ba2 reads the fixed header prefix of BA2 archive files.
//
// Only the header is parsed; the archive body is never touched. The file
// count declared in the header is used as a cheap validity and metadata
// probe, full listing and extraction are delegated to the external BSArch
// tool.
package ba2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// HeaderSize is the fixed length of the BA2 header prefix in bytes.
const HeaderSize = 24

// MagicBTDX is the magic tag well-formed BA2 archives start with. It is
// exposed for display purposes and deliberately not validated during
// parsing.
const MagicBTDX = "BTDX"

// ErrTruncated is returned when a file ends before the full header prefix
// could be read.
var ErrTruncated = errors.New("ba2: truncated header")

// Header is the fixed-layout prefix of a BA2 archive. All integer fields
// are little-endian on disk.
type Header struct {
	Magic       [4]byte
	Version     uint32
	Type        [4]byte
	FileCount   uint32
	NamesOffset uint64
}

// TypeTag returns the archive type tag as text, typically "GNRL" or "DX10".
func (h Header) TypeTag() string { return string(h.Type[:]) }

// ParseHeader reads the 24-byte header prefix from r. The read must succeed
// through all five fields; a short read is reported as ErrTruncated.
func ParseHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, ErrTruncated
		}
		return Header{}, fmt.Errorf("ba2: read header: %w", err)
	}

	var h Header
	copy(h.Magic[:], buf[0:4])
	h.Version = binary.LittleEndian.Uint32(buf[4:8])
	copy(h.Type[:], buf[8:12])
	h.FileCount = binary.LittleEndian.Uint32(buf[12:16])
	h.NamesOffset = binary.LittleEndian.Uint64(buf[16:24])
	return h, nil
}

// ReadFileCount opens path and returns the file count its header declares.
func ReadFileCount(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	h, err := ParseHeader(f)
	if err != nil {
		return 0, err
	}
	return int64(h.FileCount), nil
}
