package id3v2

import "github.com/pkg/errors"

// Kind classifies decoding failures.
type Kind int

const (
	Unknown Kind = iota
	// InvalidInput means the prefix is missing or too short to hold a header.
	InvalidInput
	// InvalidTag means the prefix is long enough but is not an ID3v2 header.
	InvalidTag
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case InvalidTag:
		return "invalid tag"
	}
	return "unknown"
}

// Error is a decoding failure of a given Kind.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

var (
	ErrNilPrefix   = &Error{InvalidInput, "id3v2: prefix is nil"}
	ErrShortPrefix = &Error{InvalidInput, "id3v2: prefix is too small to contain a header"}
	ErrBadHeader   = &Error{InvalidTag, "id3v2: prefix does not contain an ID3v2 tag"}
)

// KindOf returns the Kind of err, looking through errors wrapped with
// github.com/pkg/errors. Errors from elsewhere are Unknown.
func KindOf(err error) Kind {
	if e, ok := errors.Cause(err).(*Error); ok {
		return e.Kind
	}
	return Unknown
}
