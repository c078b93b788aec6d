package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/idiomset/internal/config"
	"github.com/heartmarshall/idiomset/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSONAndCSV(t *testing.T) {
	ctx := context.Background()

	jsonPath := writeFile(t, "idiom.json", `[{"idiom":"一乾二淨","en_meaning":"clean"}]`)
	csvPath := writeFile(t, "proverbs.csv", "in_chinese,text\n井底之蛙,frog\n亡羊补牢,fold\n")

	sources := config.DefaultSources()
	sources[0].Path = jsonPath
	sources[1].Path = csvPath

	got, err := Load(ctx, sources[0], nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.Record{{Key: "一乾二淨", Value: "clean", Position: 1}}, got)

	got, err = Load(ctx, sources[1], nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()
	broken := writeFile(t, "broken.json", `[{"idiom":`)
	noColumn := writeFile(t, "bad.csv", "chinese,english\nx,y\n")

	tests := []struct {
		name  string
		src   config.SourceConfig
		cause error
	}{
		{
			name:  "missing file",
			src:   config.SourceConfig{Name: "JSON", Kind: config.KindJSON, Path: "/nonexistent/idiom.json", KeyField: "idiom", ValueField: "en_meaning"},
			cause: fs.ErrNotExist,
		},
		{
			name: "malformed json",
			src:  config.SourceConfig{Name: "JSON", Kind: config.KindJSON, Path: broken, KeyField: "idiom", ValueField: "en_meaning"},
		},
		{
			name: "missing csv column",
			src:  config.SourceConfig{Name: "CSV", Kind: config.KindCSV, Path: noColumn, KeyField: "in_chinese", ValueField: "text"},
		},
		{
			name:  "postgres without database",
			src:   config.SourceConfig{Name: "DB", Kind: config.KindPostgres, Table: "phrases", KeyField: "chinese", ValueField: "english"},
			cause: ErrNoDatabase,
		},
		{
			name: "unknown kind",
			src:  config.SourceConfig{Name: "X", Kind: "xml", Path: "a.xml"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(ctx, tt.src, nil)
			require.Error(t, err)

			var lerr *domain.LoadError
			require.True(t, errors.As(err, &lerr), "want *LoadError, got %T", err)
			assert.Equal(t, tt.src.Name, lerr.Source)
			assert.True(t, errors.Is(err, domain.ErrLoad))
			if tt.cause != nil {
				assert.True(t, errors.Is(err, tt.cause), "want cause %v in %v", tt.cause, err)
			}
		})
	}
}
