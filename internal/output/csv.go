// Package output writes the cleaned dataset as a CSV file.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/heartmarshall/idiomset/internal/domain"
)

// Header is the column layout of the output file.
var Header = []string{"chinese", "english", "source"}

// Encode writes records as UTF-8 CSV with a byte order mark, one row per
// record, columns chinese (normalized key), english (value), source.
func Encode(w io.Writer, records []domain.NormalizedRecord) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(bw)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Key, r.Value, r.Source}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Close()
}

// WriteFile writes records to path. Data goes to a temporary file in the
// same directory which is renamed over path only after a complete write, so
// a failure never leaves a partial file. Errors are *domain.WriteError.
func WriteFile(path string, records []domain.NormalizedRecord) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, records); err != nil {
		return &domain.WriteError{Path: path, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := tmp.Sync(); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &domain.WriteError{Path: path, Err: err}
	}
	return nil
}
