// Package id3v2 validates and decodes the 10-byte header that starts an
// ID3v2 tag. Frames, extended headers and footers are not read.
package id3v2

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	Magic      = "ID3"
	HeaderSize = 10 // fixed length of the tag header

	// header flags
	flagUnsynchronisation = 1 << 7
	flagExtendedHeader    = 1 << 6
	flagExperimental      = 1 << 5

	definedFlags = flagUnsynchronisation | flagExtendedHeader | flagExperimental

	reservedVersion = 0xFF
	syncsafeMask    = 0x80808080
)

// Header is a decoded ID3v2 tag header.
type Header struct {
	Major    uint8
	Revision uint8
	Flags    uint8
	Size     uint32 // tag size excluding the header
}

func (h Header) Unsynchronisation() bool { return h.Flags&flagUnsynchronisation != 0 }
func (h Header) ExtendedHeader() bool    { return h.Flags&flagExtendedHeader != 0 }
func (h Header) Experimental() bool      { return h.Flags&flagExperimental != 0 }

// TagSize returns the size of the whole tag, header included.
func (h Header) TagSize() int64 {
	return int64(h.Size) + HeaderSize
}

// header is the layout of the header on the wire.
type header struct {
	Magic    [3]byte
	Major    uint8
	Revision uint8
	Flags    uint8
	Size     uint32
}

func synchsafe32(n uint32) uint32 {
	m := n & 0x7f
	m |= ((n & 0x7f00) >> 1)
	m |= ((n & 0x7f0000) >> 2)
	m |= ((n & 0x7f000000) >> 3)
	return m
}

func readHeader(prefix []byte) (*header, error) {
	if prefix == nil {
		return nil, ErrNilPrefix
	}
	if len(prefix) < HeaderSize {
		return nil, ErrShortPrefix
	}
	var h header
	err := binary.Read(bytes.NewReader(prefix[:HeaderSize]), binary.BigEndian, &h)
	if err != nil {
		return nil, errors.Wrap(err, "id3v2: read header")
	}
	return &h, nil
}

func (h *header) valid() bool {
	return string(h.Magic[:]) == Magic &&
		h.Major < reservedVersion && h.Revision < reservedVersion &&
		h.Flags&definedFlags == h.Flags &&
		h.Size&syncsafeMask == 0
}

// ValidHeader reports whether prefix starts with a well-formed ID3v2 header.
// A prefix that is nil or shorter than HeaderSize is an error of kind
// InvalidInput; any other mismatch is simply false.
func ValidHeader(prefix []byte) (bool, error) {
	h, err := readHeader(prefix)
	if err != nil {
		return false, err
	}
	return h.valid(), nil
}

// Decode decodes the ID3v2 header at the start of prefix. Only the first
// HeaderSize bytes are examined.
//
// The declared size is taken as-is, so a tag claiming fewer bytes than the
// header itself still decodes.
func Decode(prefix []byte) (Header, error) {
	h, err := readHeader(prefix)
	if err != nil {
		return Header{}, err
	}
	if !h.valid() {
		return Header{}, ErrBadHeader
	}
	return Header{
		Major:    h.Major,
		Revision: h.Revision,
		Flags:    h.Flags,
		Size:     synchsafe32(h.Size),
	}, nil
}
