// Package format renders decoded ID3v2 headers as strings.
package format

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"ktkr.us/pkg/id3tool/id3/id3v2"
)

var ErrUnknownFormat = errors.New("format: unknown format")

// A Formatter turns a header into its display string. Formatting a decoded
// header never fails.
type Formatter interface {
	Format(h id3v2.Header) string
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(h id3v2.Header) string

func (f FormatterFunc) Format(h id3v2.Header) string { return f(h) }

var (
	mu         sync.RWMutex
	formatters = map[string]Formatter{}
)

func init() {
	Register("text", Text)
	Register("verbose", Verbose)
	Register("json", JSON)
}

// Register makes a formatter available by name. Registering a name twice
// replaces the earlier formatter.
func Register(name string, f Formatter) {
	mu.Lock()
	formatters[name] = f
	mu.Unlock()
}

// Lookup returns the formatter registered under name.
func Lookup(name string) (Formatter, error) {
	mu.RLock()
	f, ok := formatters[name]
	mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
	return f, nil
}

// Names lists the registered formatter names in sorted order.
func Names() []string {
	mu.RLock()
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	mu.RUnlock()
	sort.Strings(names)
	return names
}

// Text is the default formatter:
//
//	version:3 revision:0 flags:0x00 size:129
var Text = FormatterFunc(text)

// Verbose is Text followed by the decoded flag bits and the total tag size.
var Verbose = FormatterFunc(func(h id3v2.Header) string {
	return fmt.Sprintf("%s unsynchronisation:%t extended:%t experimental:%t tagsize:%d",
		text(h), h.Unsynchronisation(), h.ExtendedHeader(), h.Experimental(), h.TagSize())
})

// JSON renders the four header fields as a JSON object. Flags stay a hex
// string so they read the same as in Text.
var JSON = FormatterFunc(func(h id3v2.Header) string {
	b, err := json.Marshal(NewFields(h))
	if err != nil {
		return err.Error()
	}
	return string(b)
})

func text(h id3v2.Header) string {
	return fmt.Sprintf("version:%d revision:%d flags:0x%02X size:%d", h.Major, h.Revision, h.Flags, h.Size)
}

// Fields is the serialisable form of a header.
type Fields struct {
	Version  uint8  `json:"version"`
	Revision uint8  `json:"revision"`
	Flags    string `json:"flags"`
	Size     uint32 `json:"size"`
}

func NewFields(h id3v2.Header) Fields {
	return Fields{
		Version:  h.Major,
		Revision: h.Revision,
		Flags:    fmt.Sprintf("0x%02X", h.Flags),
		Size:     h.Size,
	}
}
