// Package testcase discovers paired input/output files for a problem.
package testcase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File names one half of a testcase pair.
type File struct {
	Name string
	Path string
}

// Testcase is a matched input/expected-output pair.
type Testcase struct {
	Input  File
	Output File
}

// Discover scans dir non-recursively and pairs files by stem, stripping
// the .in/.out suffix. Entries with any other suffix, or whose stem has
// no counterpart on the other side, are silently skipped. Results are
// sorted by stem so callers see a deterministic testcase order.
func Discover(dir string) ([]Testcase, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	ins := make(map[string]File)
	outs := make(map[string]File)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".in"):
			stem := strings.TrimSuffix(name, ".in")
			ins[stem] = File{Name: name, Path: filepath.Join(dir, name)}
		case strings.HasSuffix(name, ".out"):
			stem := strings.TrimSuffix(name, ".out")
			outs[stem] = File{Name: name, Path: filepath.Join(dir, name)}
		}
	}

	stems := make([]string, 0, len(ins))
	for stem := range ins {
		if _, ok := outs[stem]; ok {
			stems = append(stems, stem)
		}
	}
	sort.Strings(stems)

	cases := make([]Testcase, 0, len(stems))
	for _, stem := range stems {
		cases = append(cases, Testcase{Input: ins[stem], Output: outs[stem]})
	}
	return cases, nil
}
