package importer

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// rawEntry is one element of a corpus JSON file.
type rawEntry struct {
	Word           string   `json:"word"`
	Meaning        string   `json:"meaning"`
	EtymologyType  string   `json:"etymology_type"`
	CrossReference string   `json:"cross_reference"`
	FullEntryText  string   `json:"full_entry_text"`
	Variants       []string `json:"variants"`
}

// listFiles returns every *.json file under dir, recursively, in sorted
// path order.
func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	slices.Sort(files)
	return files, nil
}

// readFile decodes one corpus file. A file that is not a JSON array of
// entries is an error for the whole file.
func readFile(path string) ([]rawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var entries []rawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}
