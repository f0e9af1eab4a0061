// Package listfile reads and writes the shopping list as a plain text
// file, one item per line. The file is the handoff point between the
// list bot and the shopper.
package listfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultItem is bought when the list file is missing or empty, so a run
// is never a silent no-op.
const DefaultItem = "сливочное масло 82,5%"

// Load reads the list at path. Blank lines are skipped. A missing or
// empty file yields the single default item.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{DefaultItem}, nil
		}
		return nil, fmt.Errorf("failed to open list file: %w", err)
	}
	defer f.Close()

	var items []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read list file: %w", err)
	}

	if len(items) == 0 {
		return []string{DefaultItem}, nil
	}
	return items, nil
}

// Save writes the list atomically: a temp file in the same directory is
// renamed over the target, so a concurrent reader never sees a partial
// list.
func Save(path string, items []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".shopping-list-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(item)
		sb.WriteByte('\n')
	}

	if _, err := tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace list file: %w", err)
	}
	return nil
}
