package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when present and no env file was requested.
const DefaultEnvFile = ".env"

// LoadEnvFile loads variables from path into the process environment,
// overriding existing values. An explicitly requested file must exist; the
// default ".env" is optional. It returns the file actually loaded, or "".
func LoadEnvFile(path string) (string, error) {
	if path != "" {
		if err := godotenv.Overload(path); err != nil {
			return "", fmt.Errorf("load env file %s: %w", path, err)
		}
		return path, nil
	}

	if _, err := os.Stat(DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err := godotenv.Overload(DefaultEnvFile); err != nil {
		return "", fmt.Errorf("load env file %s: %w", DefaultEnvFile, err)
	}
	return DefaultEnvFile, nil
}
