// Copyright IBM Corp. 2021, 2025
// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/apsmono/invitation/internal/pkg/errors"
)

// writeFile writes content to path on fs, creating parent directories. An
// existing file is only replaced when overwrite is set.
func writeFile(fs afero.Fs, path string, content []byte, overwrite bool) error {
	info, err := fs.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s is a directory", path)
	case err == nil && !overwrite:
		return errors.ErrOutputExists
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write rendered page to file: %w", err)
	}

	return nil
}

// readLines returns the non-blank lines of r with surrounding whitespace
// removed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}
