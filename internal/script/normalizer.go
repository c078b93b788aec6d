package script

import (
	"fmt"
	"strings"

	"github.com/longbridgeapp/opencc"
	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/idiomset/internal/config"
)

// Normalizer maps a key to its canonical-script form. Implementations are
// total: they never fail and always return a string.
type Normalizer interface {
	Normalize(text string) string
}

// maxPasses bounds the convergence loop in Converter.Normalize.
const maxPasses = 4

// Converter is the configurable Normalizer. Each pass optionally applies a
// Unicode normalization form, then an OpenCC phrase-level conversion, then the
// character table. Passes repeat until the text stops changing, so the result
// is a fixed point and Normalize is idempotent.
type Converter struct {
	form  *norm.Form
	cc    *opencc.OpenCC
	table Table
}

var _ Normalizer = (*Converter)(nil)

// New builds a Converter from configuration.
func New(cfg config.NormalizerConfig) (*Converter, error) {
	c := &Converter{table: DefaultTable()}

	switch strings.ToLower(cfg.UnicodeForm) {
	case "", config.UnicodeFormNone:
	case config.UnicodeFormNFC:
		f := norm.NFC
		c.form = &f
	case config.UnicodeFormNFKC:
		f := norm.NFKC
		c.form = &f
	default:
		return nil, fmt.Errorf("script: unknown unicode form %q", cfg.UnicodeForm)
	}

	switch strings.ToLower(cfg.Backend) {
	case "", config.BackendTable:
	case config.BackendOpenCC:
		cc, err := opencc.New("t2s")
		if err != nil {
			return nil, fmt.Errorf("script: init opencc t2s: %w", err)
		}
		c.cc = cc
	default:
		return nil, fmt.Errorf("script: unknown backend %q", cfg.Backend)
	}

	return c, nil
}

// Normalize implements Normalizer. An OpenCC conversion error skips OpenCC
// for that pass and keeps the table result.
func (c *Converter) Normalize(text string) string {
	s := text
	for range maxPasses {
		next := c.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func (c *Converter) pass(s string) string {
	if c.form != nil {
		s = c.form.String(s)
	}
	if c.cc != nil {
		if out, err := c.cc.Convert(s); err == nil {
			s = out
		}
	}
	return c.table.Convert(s)
}

// NormalizerFunc adapts a plain function to Normalizer.
type NormalizerFunc func(string) string

// Normalize calls f(text).
func (f NormalizerFunc) Normalize(text string) string { return f(text) }

// Default is the table-only Normalizer used when no configuration is given.
var Default Normalizer = NormalizerFunc(Normalize)
