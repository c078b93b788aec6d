// Package csvsrc parses a CSV file with a header row into raw records.
// Pure function: file path in, domain records out. No database dependencies.
package csvsrc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/idiomset/internal/domain"
)

// Parse reads the CSV file at path. keyColumn and valueColumn name the header
// columns mapped to Record.Key and Record.Value.
func Parse(path, keyColumn, valueColumn string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer f.Close()

	return ParseReader(f, keyColumn, valueColumn)
}

// ParseReader is Parse over an arbitrary reader. A leading byte order mark is
// accepted and header names are matched case-insensitively. A missing column
// is a structural error; a row too short to reach a column yields an empty
// field, which the merge step reports as missing.
func ParseReader(r io.Reader, keyColumn, valueColumn string) ([]domain.Record, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.FieldsPerRecord = -1 // allow variable column count

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	keyIdx, err := columnIndex(header, keyColumn)
	if err != nil {
		return nil, err
	}
	valueIdx, err := columnIndex(header, valueColumn)
	if err != nil {
		return nil, err
	}

	var records []domain.Record
	row := 0

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row+1, err)
		}
		row++

		for _, f := range fields {
			if !utf8.ValidString(f) {
				return nil, fmt.Errorf("row %d: invalid UTF-8", row)
			}
		}

		records = append(records, domain.Record{
			Key:      field(fields, keyIdx),
			Value:    field(fields, valueIdx),
			Position: row,
		})
	}

	return records, nil
}

func columnIndex(header []string, name string) (int, error) {
	want := domain.NormalizeFieldName(name)
	for i, h := range header {
		if domain.NormalizeFieldName(h) == want {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %q", name, header)
}

func field(fields []string, idx int) string {
	if idx < len(fields) {
		return fields[idx]
	}
	return ""
}
