package domain

import (
	"errors"
	"io/fs"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("sources[0].kind", "unknown kind")

	if got := err.Error(); got != "validation: sources[0].kind: unknown kind" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "output.path", Message: "required"},
		{Field: "sources", Message: "duplicate name"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestLoadError_UnwrapsSentinelAndCause(t *testing.T) {
	t.Parallel()

	err := NewLoadError("JSON", "/data/idioms.json", fs.ErrNotExist)

	if !errors.Is(err, ErrLoad) {
		t.Error("errors.Is(err, ErrLoad) = false")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false")
	}
	if got := err.Error(); got != "load JSON (/data/idioms.json): file does not exist" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestRecordMissingFieldError(t *testing.T) {
	t.Parallel()

	var err error = &RecordMissingFieldError{Source: "CSV", Position: 7, Field: FieldValue}

	if !errors.Is(err, ErrRecordMissingField) {
		t.Fatal("errors.Is(err, ErrRecordMissingField) = false")
	}
	var target *RecordMissingFieldError
	if !errors.As(err, &target) {
		t.Fatal("errors.As should match *RecordMissingFieldError")
	}
	if target.Position != 7 || target.Source != "CSV" {
		t.Errorf("unexpected target: %+v", target)
	}
	if got := err.Error(); got != "record 7 of source CSV: missing value" {
		t.Errorf("unexpected Error(): %q", got)
	}
}

func TestWriteError_UnwrapsSentinelAndCause(t *testing.T) {
	t.Parallel()

	err := &WriteError{Path: "out.csv", Err: fs.ErrPermission}

	if !errors.Is(err, ErrWrite) {
		t.Error("errors.Is(err, ErrWrite) = false")
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is(err, fs.ErrPermission) = false")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrLoad, ErrRecordMissingField, ErrWrite, ErrValidation, ErrNotFound, ErrPermission,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}

func TestRecord_MissingField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{name: "complete", rec: Record{Key: "一干二净", Value: "completely"}, want: ""},
		{name: "empty key", rec: Record{Key: "", Value: "x"}, want: FieldKey},
		{name: "blank key", rec: Record{Key: " \t", Value: "x"}, want: FieldKey},
		{name: "empty value", rec: Record{Key: "画蛇添足", Value: ""}, want: FieldValue},
		{name: "both empty reports key", rec: Record{}, want: FieldKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.rec.MissingField(); got != tt.want {
				t.Errorf("MissingField() = %q, want %q", got, tt.want)
			}
		})
	}
}
