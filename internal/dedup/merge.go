// Package dedup merges tagged record sequences and removes records whose
// normalized keys collide, keeping the record from the highest-priority source.
//
// Pure function: chunks in, Result out. Inputs are never modified.
package dedup

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/idiomset/internal/domain"
	"github.com/heartmarshall/idiomset/internal/script"
)

// Chunk is the ordered output of one loader, tagged with its source.
type Chunk struct {
	Source  domain.Source
	Records []domain.Record
}

// SourceStats counts records per source before and after removal.
type SourceStats struct {
	Name    string
	Rank    int
	Loaded  int
	Kept    int
	Dropped int
}

// Result is the outcome of a merge.
type Result struct {
	// Dataset is every record in rank order, keys normalized.
	Dataset []domain.NormalizedRecord
	// Cleaned holds one survivor per normalized key, a subsequence of Dataset.
	Cleaned []domain.NormalizedRecord
	// Duplicates lists every key shared by two or more records, sorted by key.
	// Members are ordered by source, where source order is the priority rank,
	// then by position in Dataset.
	Duplicates []domain.DuplicateGroup
	// Sources is ordered by rank.
	Sources []SourceStats
}

// DuplicateRecords returns the number of records that belong to a duplicate
// group, survivors included.
func (r *Result) DuplicateRecords() int {
	n := 0
	for _, g := range r.Duplicates {
		n += len(g.Records)
	}
	return n
}

// Merger applies one Normalizer to every key it merges.
type Merger struct {
	normalizer script.Normalizer
}

// New creates a Merger. A nil normalizer selects script.Default.
func New(n script.Normalizer) *Merger {
	if n == nil {
		n = script.Default
	}
	return &Merger{normalizer: n}
}

// Merge merges chunks with the default table normalizer.
func Merge(chunks []Chunk) (*Result, error) {
	return New(nil).Merge(chunks)
}

// Merge concatenates chunks by ascending rank (ties keep input order),
// normalizes every key and removes duplicates. A record whose raw key or value
// is blank aborts the merge with *domain.RecordMissingFieldError.
func (m *Merger) Merge(chunks []Chunk) (*Result, error) {
	ordered := slices.Clone(chunks)
	slices.SortStableFunc(ordered, func(a, b Chunk) int {
		return cmp.Compare(a.Source.Rank, b.Source.Rank)
	})

	total := 0
	for _, c := range ordered {
		total += len(c.Records)
	}

	dataset := make([]domain.NormalizedRecord, 0, total)
	stats := make([]SourceStats, 0, len(ordered))
	statIdx := make(map[string]int, len(ordered))

	for _, c := range ordered {
		si, ok := statIdx[c.Source.Name]
		if !ok {
			si = len(stats)
			statIdx[c.Source.Name] = si
			stats = append(stats, SourceStats{Name: c.Source.Name, Rank: c.Source.Rank})
		}

		for i, rec := range c.Records {
			rec.Source = c.Source.Name
			if rec.Position == 0 {
				rec.Position = i + 1
			}
			if field := rec.MissingField(); field != "" {
				return nil, &domain.RecordMissingFieldError{
					Source:   rec.Source,
					Position: rec.Position,
					Field:    field,
				}
			}

			nr := domain.NormalizedRecord{
				Record:      rec,
				OriginalKey: rec.Key,
				Rank:        c.Source.Rank,
			}
			nr.Key = m.normalizer.Normalize(rec.Key)
			dataset = append(dataset, nr)
			stats[si].Loaded++
		}
	}

	groups := groupByKey(dataset)

	cleaned := make([]domain.NormalizedRecord, 0, len(groups.order))
	var duplicates []domain.DuplicateGroup
	survivor := make([]bool, len(dataset))

	for _, key := range groups.order {
		members := groups.members[key]
		// dataset is rank-ordered, so the first member has the smallest rank
		// and is the first encountered among equals.
		survivor[members[0]] = true

		if len(members) < 2 {
			continue
		}
		g := domain.DuplicateGroup{Key: key, Records: make([]domain.NormalizedRecord, len(members))}
		for i, idx := range members {
			g.Records[i] = dataset[idx]
		}
		duplicates = append(duplicates, g)
	}

	for i, nr := range dataset {
		si := statIdx[nr.Source]
		if survivor[i] {
			cleaned = append(cleaned, nr)
			stats[si].Kept++
		} else {
			stats[si].Dropped++
		}
	}

	slices.SortStableFunc(duplicates, func(a, b domain.DuplicateGroup) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return &Result{
		Dataset:    dataset,
		Cleaned:    cleaned,
		Duplicates: duplicates,
		Sources:    stats,
	}, nil
}

// keyGroups maps normalized keys to dataset indexes, remembering the order in
// which keys were first seen.
type keyGroups struct {
	order   []string
	members map[string][]int
}

func groupByKey(dataset []domain.NormalizedRecord) keyGroups {
	g := keyGroups{members: make(map[string][]int)}
	for i, nr := range dataset {
		if _, ok := g.members[nr.Key]; !ok {
			g.order = append(g.order, nr.Key)
		}
		g.members[nr.Key] = append(g.members[nr.Key], i)
	}
	return g
}
