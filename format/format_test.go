package format

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"ktkr.us/pkg/id3tool/id3/id3v2"
)

func TestText(t *testing.T) {
	tests := []struct {
		name   string
		header id3v2.Header
		want   string
	}{
		{
			name:   "example",
			header: id3v2.Header{Major: 3, Revision: 0, Flags: 0, Size: 129},
			want:   "version:3 revision:0 flags:0x00 size:129",
		},
		{
			name:   "upper case hex",
			header: id3v2.Header{Major: 4, Revision: 2, Flags: 0xA0, Size: 268435455},
			want:   "version:4 revision:2 flags:0xA0 size:268435455",
		},
		{
			name:   "zero padded",
			header: id3v2.Header{Major: 2, Flags: 0x05},
			want:   "version:2 revision:0 flags:0x05 size:0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text.Format(tt.header); got != tt.want {
				t.Errorf("Text.Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVerbose(t *testing.T) {
	got := Verbose.Format(id3v2.Header{Major: 3, Flags: 0xA0, Size: 257})
	want := "version:3 revision:0 flags:0xA0 size:257 unsynchronisation:true extended:false experimental:true tagsize:267"
	if got != want {
		t.Errorf("Verbose.Format() = %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	got := JSON.Format(id3v2.Header{Major: 3, Revision: 0, Flags: 0, Size: 129})
	want := `{"version":3,"revision":0,"flags":"0x00","size":129}`
	if got != want {
		t.Errorf("JSON.Format() = %s, want %s", got, want)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"text", "verbose", "json"} {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q) error = %v", name, err)
		}
		if !strings.Contains(f.Format(id3v2.Header{Major: 3, Size: 129}), "129") {
			t.Errorf("Lookup(%q) formatter drops the size", name)
		}
	}

	_, err := Lookup("yaml")
	if errors.Cause(err) != ErrUnknownFormat {
		t.Errorf("Lookup(\"yaml\") error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestRegister(t *testing.T) {
	Register("size-only", FormatterFunc(func(h id3v2.Header) string {
		return "size:" + strings.Repeat("#", int(h.Size))
	}))
	t.Cleanup(func() {
		mu.Lock()
		delete(formatters, "size-only")
		mu.Unlock()
	})

	f, err := Lookup("size-only")
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Format(id3v2.Header{Size: 3}); got != "size:###" {
		t.Errorf("Format() = %q", got)
	}

	want := []string{"json", "size-only", "text", "verbose"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
