// Package id3tool reads the start of an MP3 stream and reports its ID3v2
// tag header as a string.
//
// The heavy lifting is done by package id3v2 (decoding) and package format
// (rendering). This package wires a byte source to both and turns every
// failure into a message, so callers always get a string back.
package id3tool

import (
	"io"

	"github.com/pkg/errors"

	"ktkr.us/pkg/id3tool/format"
	"ktkr.us/pkg/id3tool/id3/id3v2"
)

// PrefixSize is the most bytes read from a stream.
const PrefixSize = 20

var (
	ErrNilReader    = errors.New("id3tool: stream is nil")
	ErrNilFormatter = errors.New("id3tool: formatter is nil")
)

// ReadPrefix reads up to PrefixSize bytes from the start of r. A stream
// that ends early yields a shorter prefix, not an error. The result is never
// nil.
func ReadPrefix(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	buf := make([]byte, PrefixSize)
	n, err := io.ReadFull(r, buf)
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
		return buf[:n], nil
	}
	return nil, errors.Wrap(err, "read prefix")
}

type kind struct {
	name  string
	magic string
}

var kinds = []kind{
	{"MP3 ID3v2.2", "ID3\x02"},
	{"MP3 ID3v2.3", "ID3\x03"},
	{"MP3 ID3v2.4", "ID3\x04"},
	{"MP3 ID3v2", "ID3?"},
}

// Sniff names the tag flavour announced by the start of prefix, or returns
// "" if it does not look like an ID3v2 tag. It does not validate the header.
func Sniff(prefix []byte) string {
	for _, k := range kinds {
		if len(prefix) >= len(k.magic) && match(k.magic, prefix[:len(k.magic)]) {
			return k.name
		}
	}
	return ""
}

// Match reports whether magic matches b. Magic may contain "?" wildcards.
func match(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// Tool decodes the header at the start of one stream.
type Tool struct {
	r io.Reader
	f format.Formatter
}

func New(r io.Reader, f format.Formatter) (*Tool, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	if f == nil {
		return nil, ErrNilFormatter
	}
	return &Tool{r: r, f: f}, nil
}

// Result reads the prefix and decodes it. Decode failures keep their
// id3v2.Kind; read failures are wrapped and have no Kind.
func (t *Tool) Result() (id3v2.Header, error) {
	prefix, err := ReadPrefix(t.r)
	if err != nil {
		return id3v2.Header{}, err
	}
	return id3v2.Decode(prefix)
}

// Perform returns the formatted header, or the failure message if the
// stream could not be read or does not start with an ID3v2 tag.
func (t *Tool) Perform() string {
	h, err := t.Result()
	if err != nil {
		return err.Error()
	}
	return t.f.Format(h)
}
