// Package script converts Han text between script variants. The canonical form
// used for comparisons is simplified Chinese.
package script

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
)

//go:generate go run gen_t2s.go -o t2s.txt

//go:embed t2s.txt
var t2sSource string

// defaultTable is parsed on first use and never modified afterwards.
var defaultTable = sync.OnceValue(func() Table {
	t, err := ParseTable(t2sSource)
	if err != nil {
		panic(fmt.Sprintf("script: embedded t2s table: %v", err))
	}
	return t
})

// Table is a character-level substitution table. Characters without an entry
// pass through unchanged.
type Table map[rune]rune

// DefaultTable returns the embedded traditional-to-simplified table.
// The returned map is shared and must not be modified.
func DefaultTable() Table {
	return defaultTable()
}

// Normalize converts every traditional character in text to its simplified
// form using the embedded table. It is total, pure and idempotent.
func Normalize(text string) string {
	return defaultTable().Convert(text)
}

// Convert applies the table to every character of text.
func (t Table) Convert(text string) string {
	return strings.Map(func(r rune) rune {
		if to, ok := t[r]; ok {
			return to
		}
		return r
	}, text)
}

// ParseTable reads a table definition. Each entry is a pair of characters
// (from, to); entries are separated by whitespace and "#" starts a comment.
// Chains such as a→b, b→c are resolved so that a maps to c, which keeps
// Convert idempotent. Cycles are rejected.
func ParseTable(src string) (Table, error) {
	raw := make(map[rune]rune)

	for i, line := range strings.Split(src, "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		for _, field := range strings.Fields(line) {
			pair := []rune(field)
			if len(pair) != 2 {
				return nil, fmt.Errorf("line %d: entry %q must be exactly two characters", i+1, field)
			}
			from, to := pair[0], pair[1]
			if prev, ok := raw[from]; ok && prev != to {
				return nil, fmt.Errorf("line %d: %q maps to both %q and %q", i+1, from, prev, to)
			}
			if from == to {
				continue
			}
			raw[from] = to
		}
	}

	table := make(Table, len(raw))
	for from := range raw {
		to, err := resolve(raw, from)
		if err != nil {
			return nil, err
		}
		table[from] = to
	}
	return table, nil
}

// resolve follows from through raw until it reaches a character with no entry.
func resolve(raw map[rune]rune, from rune) (rune, error) {
	seen := map[rune]bool{from: true}
	cur := raw[from]
	for {
		next, ok := raw[cur]
		if !ok {
			return cur, nil
		}
		if seen[next] {
			return 0, fmt.Errorf("cycle in table at %q", from)
		}
		seen[cur] = true
		cur = next
	}
}
