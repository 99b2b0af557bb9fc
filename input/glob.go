// Package input builds in-memory engine.Pair input collections for the
// mrdriver CLI. The engine itself never touches disk; this package is the
// thin, caller-side step that turns a glob pattern into literal input
// pairs before a job starts.
package input

import (
	"bufio"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arnemeyer/mrengine/engine"
)

// Line is a single line read from a glob-matched file, keyed by
// "path:lineNumber" when turned into an engine.Pair.
type Line struct {
	Path   string
	Number int
	Text   string
}

// FindFiles expands a doublestar glob pattern into the regular files it
// matches, skipping directories and anything Lstat fails on.
func FindFiles(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	var files []string
	for _, name := range matches {
		info, err := os.Lstat(name)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			files = append(files, name)
		}
	}
	return files, nil
}

// ReadLines reads every line of a file into Line records.
func ReadLines(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		lines = append(lines, Line{Path: path, Number: n, Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// FromGlob expands pattern into every matching file's lines and returns
// them as input pairs keyed by "path:lineNumber", value the line text.
func FromGlob(pattern string) ([]engine.Pair[string, string], error) {
	files, err := FindFiles(pattern)
	if err != nil {
		return nil, err
	}

	var pairs []engine.Pair[string, string]
	for _, path := range files {
		lines, err := ReadLines(path)
		if err != nil {
			return nil, err
		}
		for _, l := range lines {
			pairs = append(pairs, engine.Pair[string, string]{
				Key:   fmt.Sprintf("%s:%d", l.Path, l.Number),
				Value: l.Text,
			})
		}
	}
	return pairs, nil
}
