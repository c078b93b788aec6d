package csvsrc

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/heartmarshall/idiomset/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestParse(t *testing.T) {
	records, err := Parse(testdataPath(t, "proverbs.csv"), "in_chinese", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.Record{
		{Key: "一干二净", Value: "spotless, completely clean", Position: 1},
		{Key: "井底之蛙", Value: "a frog at the bottom of a well", Position: 2},
		{Key: "亡羊补牢", Value: "mend the fold after the sheep are lost", Position: 3},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d records, want %d", len(records), len(want))
	}
	for i := range want {
		if records[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, records[i], want[i])
		}
	}
}

func TestParse_BOMAndHeaderCase(t *testing.T) {
	records, err := Parse(testdataPath(t, "bom.csv"), "in_chinese", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Key != "塞翁失馬" || records[0].Value != "a blessing in disguise" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestParse_FileNotFound(t *testing.T) {
	if _, err := Parse(testdataPath(t, "nope.csv"), "in_chinese", "text"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseReader_HeaderOnly(t *testing.T) {
	records, err := ParseReader(strings.NewReader("in_chinese,text\n"), "in_chinese", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestParseReader_ShortRowYieldsEmptyField(t *testing.T) {
	in := "in_chinese,text\n画蛇添足,superfluous\n守株待兔\n"

	records, err := ParseReader(strings.NewReader(in), "in_chinese", "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if got := records[1].MissingField(); got != domain.FieldValue {
		t.Errorf("MissingField = %q, want value", got)
	}
	if records[1].Position != 2 {
		t.Errorf("Position = %d, want 2", records[1].Position)
	}
}

func TestParseReader_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty file", ""},
		{"missing key column", "chinese,text\n一干二净,x\n"},
		{"missing value column", "in_chinese,english\n一干二净,x\n"},
		{"unterminated quote", "in_chinese,text\n\"一干二净,x\n"},
		{"invalid utf-8", "in_chinese,text\n\xff,x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseReader(strings.NewReader(tt.in), "in_chinese", "text"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
