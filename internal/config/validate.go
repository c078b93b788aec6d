package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/idiomset/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []domain.FieldError
	add := func(field, format string, args ...any) {
		errs = append(errs, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch strings.ToLower(c.Normalizer.Backend) {
	case BackendTable, BackendOpenCC:
	default:
		add("normalizer.backend", "unknown backend %q", c.Normalizer.Backend)
	}
	switch strings.ToLower(c.Normalizer.UnicodeForm) {
	case "", UnicodeFormNone, UnicodeFormNFC, UnicodeFormNFKC:
	default:
		add("normalizer.unicode_form", "unknown form %q", c.Normalizer.UnicodeForm)
	}

	if len(c.Sources) == 0 {
		add("sources", "at least one source is required")
	}
	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		field := fmt.Sprintf("sources[%d]", i)
		if s.Name == "" {
			add(field+".name", "required")
		} else if seen[s.Name] {
			add(field+".name", "duplicate source name %q", s.Name)
		}
		seen[s.Name] = true

		switch s.Kind {
		case KindJSON, KindCSV:
			if s.Path == "" {
				add(field+".path", "required for kind %s", s.Kind)
			}
		case KindPostgres:
			if s.Table == "" {
				add(field+".table", "required for kind postgres")
			}
		default:
			add(field+".kind", "unknown kind %q", s.Kind)
		}
		if s.KeyField == "" {
			add(field+".key_field", "required")
		}
		if s.ValueField == "" {
			add(field+".value_field", "required")
		}
	}

	if c.NeedsDatabase() && c.Database.DSN == "" {
		add("database.dsn", "required when a postgres source is configured")
	}

	if c.Output.Path == "" && !c.Output.DryRun {
		add("output.path", "required")
	}
	switch strings.ToLower(c.Output.ReportFormat) {
	case ReportText, ReportYAML:
	default:
		add("output.report_format", "unknown format %q", c.Output.ReportFormat)
	}

	if len(errs) == 0 {
		return nil
	}
	verr := domain.NewValidationErrors(errs)
	if len(errs) > 1 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Field + ": " + e.Message
		}
		return fmt.Errorf("%w (%s)", verr, strings.Join(msgs, "; "))
	}
	return verr
}
