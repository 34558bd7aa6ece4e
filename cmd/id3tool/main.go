package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"ktkr.us/pkg/id3tool"
	"ktkr.us/pkg/id3tool/format"
)

var (
	flagFormat  = flag.String("format", "text", "output format ("+strings.Join(format.Names(), ", ")+")")
	flagVerbose = flag.Bool("v", false, "log the tag flavour of each input")
)

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [mp3 file ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	f, err := format.Lookup(*flagFormat)
	if err != nil {
		log.Fatal(err)
	}

	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	for _, name := range names {
		out := run(name, f)
		if len(names) > 1 {
			out = name + ": " + out
		}
		fmt.Println(out)
	}
}

func run(name string, f format.Formatter) string {
	var r io.Reader = os.Stdin
	if name != "-" {
		file, err := os.Open(name)
		if err != nil {
			log.Fatal(err)
		}
		defer file.Close()
		r = file
	}

	if *flagVerbose {
		prefix, err := id3tool.ReadPrefix(r)
		if err == nil {
			if kind := id3tool.Sniff(prefix); kind != "" {
				log.Printf("%s: %s", name, kind)
			} else {
				log.Printf("%s: no ID3v2 magic", name)
			}
		}
		// put the sniffed bytes back in front
		r = io.MultiReader(bytes.NewReader(prefix), r)
	}

	tool, err := id3tool.New(r, f)
	if err != nil {
		log.Fatal(err)
	}
	return tool.Perform()
}
