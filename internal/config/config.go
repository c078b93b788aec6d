package config

import "time"

// Source kinds.
const (
	KindJSON     = "json"
	KindCSV      = "csv"
	KindPostgres = "postgres"
)

// Normalizer backends.
const (
	BackendTable  = "table"
	BackendOpenCC = "opencc"
)

// Unicode normalization forms applied before script conversion.
const (
	UnicodeFormNone = "none"
	UnicodeFormNFC  = "nfc"
	UnicodeFormNFKC = "nfkc"
)

// Report formats.
const (
	ReportText = "text"
	ReportYAML = "yaml"
)

// Config is the root application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Sources    []SourceConfig   `yaml:"sources"`
	Output     OutputConfig     `yaml:"output"`
	Database   DatabaseConfig   `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// NormalizerConfig selects how keys are brought to the canonical script.
type NormalizerConfig struct {
	Backend     string `yaml:"backend"      env:"NORMALIZER_BACKEND"      env-default:"table"`
	UnicodeForm string `yaml:"unicode_form" env:"NORMALIZER_UNICODE_FORM" env-default:"none"`
}

// SourceConfig describes one input. The position of a source in
// Config.Sources is its priority rank: earlier sources win collisions.
type SourceConfig struct {
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Path       string `yaml:"path"`
	KeyField   string `yaml:"key_field"`
	ValueField string `yaml:"value_field"`

	// Table and OrderBy are used by the postgres kind only.
	Table   string `yaml:"table"`
	OrderBy string `yaml:"order_by"`
}

// OutputConfig holds output sink and report settings.
type OutputConfig struct {
	Path         string `yaml:"path"          env:"OUTPUT_PATH"          env-default:"chinese_english_proverbs_cleaned.csv"`
	ReportFormat string `yaml:"report_format" env:"OUTPUT_REPORT_FORMAT" env-default:"text"`
	DryRun       bool   `yaml:"dry_run"       env:"OUTPUT_DRY_RUN"`
}

// DatabaseConfig holds PostgreSQL connection settings. It is only used when a
// postgres source is configured.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// DefaultSources returns the two sources used when none are configured:
// the JSON idiom dictionary first, then the CSV proverb list.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "JSON", Kind: KindJSON, Path: "zh_idiom_meaning.json", KeyField: "idiom", ValueField: "en_meaning"},
		{Name: "CSV", Kind: KindCSV, Path: "Chinese_proverbs.csv", KeyField: "in_chinese", ValueField: "text"},
	}
}

// NeedsDatabase reports whether any configured source reads from Postgres.
func (c Config) NeedsDatabase() bool {
	for _, s := range c.Sources {
		if s.Kind == KindPostgres {
			return true
		}
	}
	return false
}

// applyDefaults fills values cleanenv cannot default inside a slice.
func (c *Config) applyDefaults() {
	if len(c.Sources) == 0 {
		c.Sources = DefaultSources()
		return
	}
	for i := range c.Sources {
		s := &c.Sources[i]
		if s.Name == "" {
			s.Name = s.Kind
		}
		switch s.Kind {
		case KindJSON:
			s.KeyField = orDefault(s.KeyField, "idiom")
			s.ValueField = orDefault(s.ValueField, "en_meaning")
		case KindCSV:
			s.KeyField = orDefault(s.KeyField, "in_chinese")
			s.ValueField = orDefault(s.ValueField, "text")
		case KindPostgres:
			s.KeyField = orDefault(s.KeyField, "chinese")
			s.ValueField = orDefault(s.ValueField, "english")
		}
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
