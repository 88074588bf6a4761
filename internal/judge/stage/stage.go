// Package stage writes submitted source text to a uniquely-named file
// on disk so the compiler and runner can operate on a stable path.
package stage

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	appErr "judgecore/pkg/errors"
)

// extensions maps a language tag to its canonical source file suffix.
var extensions = map[string]string{
	"c":      "c",
	"cpp":    "cpp",
	"rust":   "rs",
	"python": "py",
}

// Source is a staged submission: a unique id, the absolute path its
// text was written to, and the language it was staged for.
type Source struct {
	ID   string
	Path string
	Lang string
}

// Stager writes submissions under a single root directory.
type Stager struct {
	dir string
}

// NewStager creates a Stager rooted at dir. The directory must already
// exist; Stager never creates it.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir}
}

// Stage writes source to a freshly-named file under the staging root
// and returns the resulting handle. The id is a random UUID rather
// than a small-range counter, so concurrent submissions never collide
// on a staged path.
func (s *Stager) Stage(source, lang string) (Source, error) {
	ext, ok := extensions[lang]
	if !ok {
		return Source{}, appErr.Newf(appErr.LanguageNotSupported, "unsupported language %q", lang)
	}

	id := uuid.NewString()
	path, err := filepath.Abs(filepath.Join(s.dir, id+"."+ext))
	if err != nil {
		return Source{}, appErr.Wrapf(err, appErr.StagingFailed, "resolve staged path: %v", err)
	}
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return Source{}, appErr.Wrapf(err, appErr.StagingFailed, "write staged source: %v", err)
	}

	return Source{ID: id, Path: path, Lang: lang}, nil
}

// Cleanup removes the staged source file. Best-effort: callers should
// log but not fail the submission if this returns an error.
func (s Source) Cleanup() error {
	return os.Remove(s.Path)
}
