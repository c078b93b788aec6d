// Package jsonsrc parses a JSON array of objects into raw records.
// Pure function: file path in, domain records out. No database dependencies.
package jsonsrc

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/idiomset/internal/domain"
)

//go:embed records.schema.json
var recordsSchemaJSON string

var loadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource("records.schema.json", strings.NewReader(recordsSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("records.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Parse reads the JSON file at path and returns one record per array element,
// in document order. keyField and valueField name the object members mapped
// to Record.Key and Record.Value.
func Parse(path, keyField, valueField string) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open JSON file: %w", err)
	}
	defer f.Close()

	return ParseReader(f, keyField, valueField)
}

// ParseReader is Parse over an arbitrary reader. A leading byte order mark is
// accepted. Absent or null members yield empty strings, which the merge step
// reports as missing fields; any other non-string member is a structural error.
func ParseReader(r io.Reader, keyField, valueField string) ([]domain.Record, error) {
	raw, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	if err != nil {
		return nil, fmt.Errorf("read JSON: %w", err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("decode JSON: invalid UTF-8")
	}

	value, err := decodeStrictJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if err := schema.Validate(value); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	items := value.([]any)
	records := make([]domain.Record, 0, len(items))
	for i, item := range items {
		obj := item.(map[string]any)

		key, err := stringMember(obj, keyField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		val, err := stringMember(obj, valueField)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		records = append(records, domain.Record{Key: key, Value: val, Position: i + 1})
	}

	return records, nil
}

func stringMember(obj map[string]any, name string) (string, error) {
	v, ok := obj[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("member %q is %T, want string", name, v)
	}
	return s, nil
}

func decodeStrictJSON(raw []byte) (any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("document contains trailing content")
	}

	return value, nil
}
