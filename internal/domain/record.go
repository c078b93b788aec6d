package domain

import "strings"

// Field names reported by RecordMissingFieldError.
const (
	FieldKey   = "key"
	FieldValue = "value"
)

// Source identifies an input origin. Rank is the priority rank: lower wins.
type Source struct {
	Name string
	Rank int
}

// Record is a raw (phrase, translation) pair as produced by a loader.
// Position is the 1-based position of the record inside its source.
type Record struct {
	Key      string
	Value    string
	Source   string
	Position int
}

// MissingField returns the name of the first required field that is absent
// (empty or whitespace-only), or "" if the record is complete.
func (r Record) MissingField() string {
	if strings.TrimSpace(r.Key) == "" {
		return FieldKey
	}
	if strings.TrimSpace(r.Value) == "" {
		return FieldValue
	}
	return ""
}

// NormalizedRecord is a Record whose Key holds the canonical-script form.
// OriginalKey keeps the key exactly as loaded.
type NormalizedRecord struct {
	Record
	OriginalKey string
	Rank        int
}

// DuplicateGroup lists every record sharing one normalized key, in priority
// order. It is computed before removal and is never used to mutate a dataset.
type DuplicateGroup struct {
	Key     string
	Records []NormalizedRecord
}

// Survivor returns the record kept for the group's key.
func (g DuplicateGroup) Survivor() NormalizedRecord {
	return g.Records[0]
}
