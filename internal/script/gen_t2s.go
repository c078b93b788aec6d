//go:build ignore

// gen_t2s regenerates t2s.txt by running every CJK code point through the
// OpenCC t2s converter and recording each one it maps to a different single
// character. Chains are left in place; ParseTable resolves them.
package main

import (
	"bytes"
	"flag"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/longbridgeapp/opencc"
)

const (
	firstRune = 0x2E80  // CJK Radicals Supplement
	lastRune  = 0x2FFFF // end of the Supplementary Ideographic Plane
	perLine   = 20
)

const header = `# Code generated by gen_t2s.go from the OpenCC t2s dictionaries. DO NOT EDIT.
# Each entry is two characters: the traditional form followed by the simplified form.

`

func main() {
	out := flag.String("o", "t2s.txt", "output file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cc, err := opencc.New("t2s")
	if err != nil {
		logger.Error("init opencc", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var pairs []string
	for r := rune(firstRune); r <= lastRune; r++ {
		if !utf8.ValidRune(r) {
			continue
		}
		in := string(r)
		got, err := cc.Convert(in)
		if err != nil {
			logger.Error("convert", slog.String("rune", in), slog.String("error", err.Error()))
			os.Exit(1)
		}
		if got == in || utf8.RuneCountInString(got) != 1 {
			continue
		}
		pairs = append(pairs, in+got)
	}

	var b bytes.Buffer
	b.WriteString(header)
	for i := 0; i < len(pairs); i += perLine {
		b.WriteString(strings.Join(pairs[i:min(i+perLine, len(pairs))], " "))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(*out, b.Bytes(), 0o644); err != nil {
		logger.Error("write table", slog.String("path", *out), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("table generated", slog.String("path", *out), slog.Int("entries", len(pairs)))
}
