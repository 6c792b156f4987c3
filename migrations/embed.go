// Package migrations holds the SurrealQL schema applied at startup and by the
// test database helper.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// FS contains the embedded SurrealQL migrations, applied in file name order.
//
//go:embed *.surql
var FS embed.FS

// Scripts returns the embedded migrations sorted by file name
func Scripts() ([]string, error) {
	return Load(FS)
}

// Load reads the .surql files at the root of fsys sorted by name
func Load(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".surql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	scripts := make([]string, 0, len(files))
	for _, name := range files {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		scripts = append(scripts, string(content))
	}
	return scripts, nil
}
