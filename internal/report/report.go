// Package report renders a human-readable summary of a merge run.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/idiomset/internal/config"
	"github.com/heartmarshall/idiomset/internal/dedup"
	"github.com/heartmarshall/idiomset/internal/domain"
)

// Summary is everything a report shows. Build it with FromResult.
type Summary struct {
	RunID            string             `yaml:"run_id,omitempty"`
	Sources          []SourceLine       `yaml:"sources"`
	Total            int                `yaml:"total"`
	DuplicateGroups  int                `yaml:"duplicate_groups"`
	DuplicateRecords int                `yaml:"duplicate_records"`
	Duplicates       []DuplicateListing `yaml:"duplicates,omitempty"`
	Final            int                `yaml:"final"`
	OutputPath       string             `yaml:"output_path,omitempty"`
}

// SourceLine is the per-source part of a Summary.
type SourceLine struct {
	Name    string `yaml:"name"`
	Loaded  int    `yaml:"loaded"`
	Kept    int    `yaml:"kept"`
	Dropped int    `yaml:"dropped"`
}

// DuplicateListing is one duplicate group. The first entry is the survivor.
type DuplicateListing struct {
	Key     string         `yaml:"key"`
	Entries []DuplicateRow `yaml:"entries"`
}

// DuplicateRow is one member of a duplicate group.
type DuplicateRow struct {
	Source      string `yaml:"source"`
	Position    int    `yaml:"position"`
	OriginalKey string `yaml:"original_key"`
	Value       string `yaml:"value"`
	Kept        bool   `yaml:"kept"`
}

// FromResult builds a Summary from a merge result. The duplicate listing is
// taken from the groups computed before removal.
func FromResult(runID string, res *dedup.Result) Summary {
	s := Summary{
		RunID:            runID,
		Total:            len(res.Dataset),
		DuplicateGroups:  len(res.Duplicates),
		DuplicateRecords: res.DuplicateRecords(),
		Final:            len(res.Cleaned),
	}
	for _, st := range res.Sources {
		s.Sources = append(s.Sources, SourceLine{Name: st.Name, Loaded: st.Loaded, Kept: st.Kept, Dropped: st.Dropped})
	}
	for _, g := range res.Duplicates {
		s.Duplicates = append(s.Duplicates, listing(g))
	}
	return s
}

func listing(g domain.DuplicateGroup) DuplicateListing {
	l := DuplicateListing{Key: g.Key, Entries: make([]DuplicateRow, len(g.Records))}
	for i, r := range g.Records {
		l.Entries[i] = DuplicateRow{
			Source:      r.Source,
			Position:    r.Position,
			OriginalKey: r.OriginalKey,
			Value:       r.Value,
			Kept:        i == 0,
		}
	}
	return l
}

// Reporter writes a Summary to w.
type Reporter interface {
	Write(w io.Writer, s Summary) error
}

// New returns the reporter for format. color only affects the text format.
func New(format string, useColor bool) (Reporter, error) {
	switch strings.ToLower(format) {
	case "", config.ReportText:
		return &TextReporter{Color: useColor}, nil
	case config.ReportYAML:
		return YAMLReporter{}, nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}

// TextReporter renders a console-style listing.
type TextReporter struct {
	Color bool
}

// Write implements Reporter.
func (r *TextReporter) Write(w io.Writer, s Summary) error {
	heading := r.style(color.FgCyan, color.Bold)
	kept := r.style(color.FgGreen)
	dropped := r.style(color.FgHiBlack)

	ew := &errWriter{w: w}

	if s.RunID != "" {
		ew.printf("%s %s\n", heading("Run"), s.RunID)
	}
	for _, src := range s.Sources {
		ew.printf("%s dataset loaded: %d rows\n", src.Name, src.Loaded)
	}
	ew.printf("Combined dataset: %d rows\n", s.Total)

	ew.printf("\n%s\n", heading(fmt.Sprintf("Duplicate records (%d groups):", s.DuplicateGroups)))
	if len(s.Duplicates) == 0 {
		ew.printf("  none\n")
	}
	for _, d := range s.Duplicates {
		ew.printf("%s\n", d.Key)
		for _, e := range d.Entries {
			line := fmt.Sprintf("  %-8s #%-5d %s  %s", e.Source, e.Position, e.OriginalKey, e.Value)
			if e.Kept {
				ew.printf("%s %s\n", line, kept("[kept]"))
			} else {
				ew.printf("%s\n", dropped(line))
			}
		}
	}
	ew.printf("Total duplicates found: %d\n", s.DuplicateRecords)

	ew.printf("\n%s\n", heading("Result"))
	for _, src := range s.Sources {
		ew.printf("  %-8s kept %d, dropped %d\n", src.Name, src.Kept, src.Dropped)
	}
	ew.printf("Dataset after removing duplicates: %d rows\n", s.Final)
	if s.OutputPath != "" {
		ew.printf("Saved to %s\n", s.OutputPath)
	}

	return ew.err
}

func (r *TextReporter) style(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if r.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// YAMLReporter renders the Summary as a YAML document.
type YAMLReporter struct{}

// Write implements Reporter.
func (YAMLReporter) Write(w io.Writer, s Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return nil
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
